// Package tagging reconciles declarative tag membership against the store.
//
// Declarative tags are defined by pattern lists in config. Resolution is
// pure: given the discovered tasks and the pattern lists, compute which
// tasks belong to which tags. Reconciliation then edits the store so its
// materialised membership matches the computed set - removals first, then
// additions, so a tag is never left transiently empty when its membership
// is being replaced like-for-like.
//
// Explicitly pinned tags (quick launch, manual adds) never pass through
// here; reconciliation runs only for tag names present in the config.
package tagging

import (
	"context"
	"fmt"
	"sort"

	"github.com/jpl-au/tasklens/internal/glob"
	"github.com/jpl-au/tasklens/internal/pattern"
	"github.com/jpl-au/tasklens/internal/store"
	"github.com/jpl-au/tasklens/internal/task"
)

// Resolve computes, per task ID, the set of declarative tags it currently
// belongs to. Pure given its inputs. Pattern evaluation within a tag is a
// union, so list order cannot change the match set; it only decides
// insertion order when membership is materialised (first pattern in list
// order, first task in discovery order).
func Resolve(tasks []task.Task, patternsByTag map[string][]pattern.Pattern) map[string]map[string]bool {
	tagsByTask := make(map[string]map[string]bool)
	for tag, patterns := range patternsByTag {
		for _, t := range tasks {
			if pattern.MatchesAny(t, patterns) {
				if tagsByTask[t.ID] == nil {
					tagsByTask[t.ID] = make(map[string]bool)
				}
				tagsByTask[t.ID][tag] = true
			}
		}
	}
	return tagsByTask
}

// ReconcileResult summarises one tag's reconciliation.
type ReconcileResult struct {
	Tag     string `json:"tag"`
	Added   int    `json:"added"`
	Removed int    `json:"removed"`
}

// ReconcileTag brings one declarative tag's stored membership in line with
// the tasks currently matching its pattern list. Stored pattern rows that
// are not exact task IDs are ignored here: materialised declarative tags
// store resolved IDs, and foreign rows belong to the user.
//
// Removals run before additions, so a same-cardinality replacement never
// shows an empty tag to a concurrent reader.
func ReconcileTag(ctx context.Context, st store.Store, tag string, tasks []task.Task, patterns []pattern.Pattern) (ReconcileResult, error) {
	res := ReconcileResult{Tag: tag}

	matched := make(map[string]bool)
	var matchedOrder []string
	for _, p := range patterns {
		for _, t := range tasks {
			if !matched[t.ID] && pattern.Matches(t, p) {
				matched[t.ID] = true
				matchedOrder = append(matchedOrder, t.ID)
			}
		}
	}

	members, err := st.ListMembers(ctx, tag)
	if err != nil {
		return res, fmt.Errorf("list members of %s: %w", tag, err)
	}

	known := task.ByID(tasks)
	current := make(map[string]bool)
	for _, m := range members {
		// Only exact-ID rows participate in reconciliation.
		if _, isID := known[m.Pattern]; isID {
			current[m.Pattern] = true
			continue
		}
		// A row that stopped resolving to any live task is a disappeared
		// task if it looks like an ID we materialised earlier; prune it.
		if looksLikeTaskID(m.Pattern) {
			current[m.Pattern] = true
		}
	}

	for id := range current {
		if !matched[id] {
			if err := st.RemoveMember(ctx, tag, id); err != nil {
				return res, fmt.Errorf("prune %s from %s: %w", id, tag, err)
			}
			res.Removed++
		}
	}

	for _, id := range matchedOrder {
		if !current[id] {
			if err := st.AddMember(ctx, tag, id); err != nil {
				return res, fmt.Errorf("add %s to %s: %w", id, tag, err)
			}
			res.Added++
		}
	}

	return res, nil
}

// ReconcileAll reconciles every declarative tag in the config. Tags are
// self-healing across discovery runs: disappeared or no-longer-matching
// tasks are pruned, newly matching tasks appended.
func ReconcileAll(ctx context.Context, st store.Store, tasks []task.Task, patternsByTag map[string][]pattern.Pattern) ([]ReconcileResult, error) {
	var results []ReconcileResult
	for _, tag := range sortedKeys(patternsByTag) {
		if tag == store.QuickTag {
			continue // quick launch is explicit membership only
		}
		res, err := ReconcileTag(ctx, st, tag, tasks, patternsByTag[tag])
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

// looksLikeTaskID reports whether a stored pattern has the canonical
// type:path:label shape produced by materialisation. Glob metacharacters
// rule a row out: materialised IDs are literal, so "shell:scripts/*:dev*"
// is a user pattern even though it carries two colons.
func looksLikeTaskID(p string) bool {
	if glob.IsGlob(p) {
		return false
	}
	first := -1
	for i, r := range p {
		if r == ':' {
			if first == -1 {
				first = i
				continue
			}
			return first > 0 && i > first+1 && i < len(p)-1
		}
	}
	return false
}

func sortedKeys(m map[string][]pattern.Pattern) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
