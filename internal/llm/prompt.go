package llm

import (
	"errors"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

type PromptSpec struct {
	System string `yaml:"system"`
	Style  struct {
		Temperature float32 `yaml:"temperature"`
		MaxTokens   int     `yaml:"max_tokens"`
	} `yaml:"style"`
}

const defaultSystemPrompt = `You are a friendly maps assistant. Answer conversationally and briefly.
When the user asks for directions or for places, the app shows a map under your
reply, so describe the answer without inventing addresses, ratings or routes.`

func DefaultPrompt() PromptSpec {
	var p PromptSpec
	p.System = defaultSystemPrompt
	p.Style.Temperature = 0.7
	p.Style.MaxTokens = 512
	return p
}

// LoadPrompt reads the assistant prompt from a YAML file. A missing file
// yields DefaultPrompt; empty fields in the file are filled from it.
func LoadPrompt(path string) (PromptSpec, error) {
	def := DefaultPrompt()
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return def, nil
		}
		return PromptSpec{}, err
	}
	var spec PromptSpec
	if err := yaml.Unmarshal(b, &spec); err != nil {
		return PromptSpec{}, err
	}
	if spec.System == "" {
		spec.System = def.System
	}
	if spec.Style.Temperature <= 0 {
		spec.Style.Temperature = def.Style.Temperature
	}
	if spec.Style.MaxTokens <= 0 {
		spec.Style.MaxTokens = def.Style.MaxTokens
	}
	return spec, nil
}
