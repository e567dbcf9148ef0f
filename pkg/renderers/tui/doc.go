// Package tui collects a rental contract interactively in a terminal using
// survey prompts. Tests script the PromptDriver instead of a real terminal.
package tui
