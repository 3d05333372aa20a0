// battery.go
package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Battery holds the content the onboarding screens present for each of the
// six sub-tests. Timing and input capture happen in the shell; the service
// only owns the material.
type Battery struct {
	ReadingPassage  Passage           `yaml:"reading_passage"`
	LexicalItems    []LexicalItem     `yaml:"lexical_items"`
	NamingGrid      []string          `yaml:"naming_grid"`
	Comprehension   []BatteryQuestion `yaml:"comprehension"`
	SelfReport      []BatteryQuestion `yaml:"self_report"`
	TrackingSeconds int               `yaml:"tracking_seconds"`
}

// Passage is a reading-speed test text with its reference word count.
type Passage struct {
	Title     string `yaml:"title"`
	Text      string `yaml:"text"`
	WordCount int    `yaml:"word_count"`
}

// LexicalItem is one word/pseudoword decision trial.
type LexicalItem struct {
	Text   string `yaml:"text"`
	IsWord bool   `yaml:"is_word"`
	// Phonetic marks pseudowords that sound like real words; mistakes on
	// these count as phonological errors.
	Phonetic bool `yaml:"phonetic,omitempty"`
}

// BatteryQuestion is a comprehension question or self-report prompt.
type BatteryQuestion struct {
	ID      string          `yaml:"id"`
	Prompt  string          `yaml:"prompt"`
	Options []BatteryOption `yaml:"options,omitempty"`
	Scale   *BatteryScale   `yaml:"scale,omitempty"`
}

// BatteryOption is one multiple-choice answer.
type BatteryOption struct {
	Value   string `yaml:"value"`
	Label   string `yaml:"label"`
	Correct bool   `yaml:"correct,omitempty"`
}

// BatteryScale describes a Likert rating range.
type BatteryScale struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// LoadBattery reads and parses the battery content file.
func LoadBattery(path string) (*Battery, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read battery file: %w", err)
	}

	var battery Battery
	if err := yaml.Unmarshal(data, &battery); err != nil {
		return nil, fmt.Errorf("failed to unmarshal battery YAML: %w", err)
	}

	return &battery, nil
}
