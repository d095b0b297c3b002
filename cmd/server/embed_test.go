package main

import (
	"strings"
	"testing"
)

func TestNewEmbeddedData(t *testing.T) {
	e, err := newEmbeddedData()
	switch {
	case err != nil:
		t.Fatalf("unwanted error: %v", err)
	case len(strings.Fields(e.Version)) != 1:
		t.Errorf("wanted version to be a single word, got %q", e.Version)
	}
	for _, n := range setupSQLFileNames {
		if _, err := e.SQLFS.Open(n); err != nil {
			t.Errorf("wanted setup query file %v to be embedded: %v", n, err)
		}
	}
	if _, err := e.TemplateFS.Open("index.html"); err != nil {
		t.Errorf("wanted index.html to be embedded: %v", err)
	}
	if _, err := e.StaticFS.Open("robots.txt"); err != nil {
		t.Errorf("wanted robots.txt to be embedded: %v", err)
	}
}
