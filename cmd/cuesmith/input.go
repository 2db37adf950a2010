package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"cuesmith/internal/config"
	"cuesmith/internal/textutil"
	"cuesmith/internal/transcript"
)

func loadTranscript(path string) (transcript.Transcript, error) {
	path, err := config.ExpandPath(strings.TrimSpace(path))
	if err != nil {
		return transcript.Transcript{}, err
	}
	tr, err := transcript.Load(path)
	if err != nil {
		return transcript.Transcript{}, fmt.Errorf("load transcript %s: %w", path, err)
	}
	return tr, nil
}

// readText reads a file and transcodes it to UTF-8.
func readText(path string) (string, error) {
	path, err := config.ExpandPath(strings.TrimSpace(path))
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	decoded, err := textutil.DecodeToUTF8(data)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", path, err)
	}
	return string(decoded), nil
}

// readScriptTokens accepts a JSON array of strings or one token per line.
func readScriptTokens(path string) ([]string, error) {
	content, err := readText(path)
	if err != nil {
		return nil, err
	}
	trimmed := bytes.TrimSpace([]byte(content))
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var tokens []string
		if err := json.Unmarshal(trimmed, &tokens); err != nil {
			return nil, fmt.Errorf("parse script tokens %s: %w", path, err)
		}
		return tokens, nil
	}
	var tokens []string
	for _, line := range strings.Split(content, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			tokens = append(tokens, line)
		}
	}
	return tokens, nil
}

// scriptFlags holds the script inputs shared by generate and align.
type scriptFlags struct {
	scriptPath string
	tokensPath string
}

func (f scriptFlags) load() (string, []string, error) {
	var text string
	var tokens []string
	var err error
	if strings.TrimSpace(f.scriptPath) != "" {
		if text, err = readText(f.scriptPath); err != nil {
			return "", nil, err
		}
	}
	if strings.TrimSpace(f.tokensPath) != "" {
		if tokens, err = readScriptTokens(f.tokensPath); err != nil {
			return "", nil, err
		}
	}
	return text, tokens, nil
}
