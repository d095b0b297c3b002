package main

import (
	"embed"
	"io/fs"
)

//go:embed embed/version.txt
var embedVersion string

//go:embed embed/sql
var embeddedSQLFS embed.FS

//go:embed embed/template
var embeddedTemplateFS embed.FS

//go:embed embed/static
var embeddedStaticFS embed.FS

// embeddedData groups the embedded file systems after their embed/ prefixes are removed.
type embeddedData struct {
	Version    string
	SQLFS      fs.FS
	TemplateFS fs.FS
	StaticFS   fs.FS
}

// newEmbeddedData strips the embed directory prefixes from the embedded file systems.
func newEmbeddedData() (*embeddedData, error) {
	v, err := cleanVersion(embedVersion)
	if err != nil {
		return nil, err
	}
	sqlFS, err := fs.Sub(embeddedSQLFS, "embed/sql")
	if err != nil {
		return nil, err
	}
	templateFS, err := fs.Sub(embeddedTemplateFS, "embed/template")
	if err != nil {
		return nil, err
	}
	staticFS, err := fs.Sub(embeddedStaticFS, "embed/static")
	if err != nil {
		return nil, err
	}
	e := embeddedData{
		Version:    v,
		SQLFS:      sqlFS,
		TemplateFS: templateFS,
		StaticFS:   staticFS,
	}
	return &e, nil
}
