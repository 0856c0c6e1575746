package manifest

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/template"

	"go.uber.org/zap"

	"extension-host/extension"
)

// Factory builds manifest-backed extensions. It implements
// extension.Factory.
type Factory struct {
	log *zap.Logger
}

// NewFactory creates a manifest factory.
func NewFactory(log *zap.Logger) *Factory {
	return &Factory{log: log}
}

// New reads, validates, and compiles the manifest at src.Path. The manifest
// id must match the file stem so registry keys stay stable.
func (f *Factory) New(ctx context.Context, src extension.Source) (extension.Extension, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(src.Path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	m, err := Parse(data)
	if err != nil {
		return nil, err
	}
	if m.ID != src.ID {
		return nil, fmt.Errorf("manifest id %q does not match file stem %q", m.ID, src.ID)
	}

	ext := &manifestExtension{manifest: *m}
	for _, cm := range m.Commands {
		tmpl, err := template.New(cm.Name).Parse(cm.Reply)
		if err != nil {
			return nil, fmt.Errorf("command %q reply template: %w", cm.Name, err)
		}
		ext.commands = append(ext.commands, extension.Command{
			Name:        cm.Name,
			Description: cm.Description,
			Handler:     replyHandler(tmpl),
		})
	}

	f.log.Debug("constructed extension from manifest",
		zap.String("extension", m.ID),
		zap.Int("commands", len(ext.commands)),
	)
	return ext, nil
}

// replyHandler renders the reply template with the request arguments.
func replyHandler(tmpl *template.Template) extension.CommandHandler {
	return func(_ context.Context, req extension.Request) (extension.Response, error) {
		var buf strings.Builder
		if err := tmpl.Execute(&buf, req.Args); err != nil {
			return extension.Response{}, fmt.Errorf("render reply: %w", err)
		}
		return extension.Response{Text: buf.String()}, nil
	}
}

// manifestExtension is the capability set built from a manifest file.
type manifestExtension struct {
	manifest Manifest
	commands []extension.Command
}

func (e *manifestExtension) ID() string          { return e.manifest.ID }
func (e *manifestExtension) DisplayName() string { return e.manifest.Name }
func (e *manifestExtension) Description() string { return e.manifest.Description }
func (e *manifestExtension) Emoji() string       { return e.manifest.Emoji }
func (e *manifestExtension) Commands() []extension.Command {
	return e.commands
}
