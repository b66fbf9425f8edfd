// keys.go provides flat dotted-key access to config values for the config
// command. Declarative tags are deliberately excluded: pattern lists are
// edited in the YAML file, not through key/value gets and sets.

package config

import (
	"fmt"
	"strconv"
)

// knownKeys lists the keys addressable via Get/Set, in display order.
var knownKeys = []string{
	"model.base_url",
	"model.embed_model",
	"model.summarize_model",
	"search.top_k",
	"search.min_score",
}

// Get returns the value of a dotted config key as a string. Unset keys
// return the empty string.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "model.base_url":
		return c.Model.BaseURL, nil
	case "model.embed_model":
		return c.Model.EmbedModel, nil
	case "model.summarize_model":
		return c.Model.SummarizeModel, nil
	case "search.top_k":
		if c.Search.TopK == nil {
			return "", nil
		}
		return strconv.Itoa(*c.Search.TopK), nil
	case "search.min_score":
		if c.Search.MinScore == nil {
			return "", nil
		}
		return strconv.FormatFloat(*c.Search.MinScore, 'g', -1, 64), nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
}

// Set updates a dotted config key from its string form, validating bounds.
func (c *Config) Set(key, value string) error {
	switch key {
	case "model.base_url":
		c.Model.BaseURL = value
		return nil
	case "model.embed_model":
		c.Model.EmbedModel = value
		return nil
	case "model.summarize_model":
		c.Model.SummarizeModel = value
		return nil
	case "search.top_k":
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: top_k must be an integer, got %q", ErrInvalidValue, value)
		}
		c.Search.TopK = &v
		return c.Validate()
	case "search.min_score":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%w: min_score must be a number, got %q", ErrInvalidValue, value)
		}
		c.Search.MinScore = &v
		return c.Validate()
	}
	return fmt.Errorf("%w: %s", ErrUnknownKey, key)
}

// All returns every known key with its current value, keyed in knownKeys
// order via the returned slice of keys.
func (c *Config) All() map[string]string {
	out := make(map[string]string, len(knownKeys))
	for _, k := range knownKeys {
		v, _ := c.Get(k)
		out[k] = v
	}
	return out
}

// Keys returns the addressable config keys in display order.
func Keys() []string {
	return knownKeys
}
