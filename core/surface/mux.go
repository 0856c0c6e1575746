package surface

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"extension-host/extension"
)

// CommandInfo describes one registered command for listings.
type CommandInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Extension   string `json:"extension"`
	Emoji       string `json:"emoji"`
}

type registration struct {
	owner string
	cmd   extension.Command
	emoji string
}

// Mux routes commands to the handlers of currently loaded extensions.
// It implements extension.Surface.
type Mux struct {
	log *zap.Logger

	mu       sync.RWMutex
	commands map[string]registration
	byExt    map[string][]string
}

// NewMux creates an empty command mux.
func NewMux(log *zap.Logger) *Mux {
	return &Mux{
		log:      log,
		commands: make(map[string]registration),
		byExt:    make(map[string][]string),
	}
}

// Register adds every command of ext to the routing table. Command names
// are global: a name already owned by another extension rejects the whole
// registration, leaving the table unchanged.
func (m *Mux) Register(ext extension.Extension) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := ext.ID()
	if _, dup := m.byExt[id]; dup {
		return fmt.Errorf("extension %s already registered", id)
	}

	cmds := ext.Commands()
	for _, cmd := range cmds {
		if reg, taken := m.commands[cmd.Name]; taken {
			return fmt.Errorf("command %q already registered by extension %s", cmd.Name, reg.owner)
		}
	}

	names := make([]string, 0, len(cmds))
	for _, cmd := range cmds {
		m.commands[cmd.Name] = registration{owner: id, cmd: cmd, emoji: ext.Emoji()}
		names = append(names, cmd.Name)
	}
	m.byExt[id] = names
	m.log.Debug("registered extension commands",
		zap.String("extension", id), zap.Strings("commands", names))
	return nil
}

// Deregister removes every command owned by the extension id.
func (m *Mux) Deregister(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	names, ok := m.byExt[id]
	if !ok {
		return fmt.Errorf("extension %s is not registered", id)
	}
	for _, name := range names {
		delete(m.commands, name)
	}
	delete(m.byExt, id)
	return nil
}

// ErrUnknownCommand is returned by Dispatch when no extension owns the
// requested command name.
var ErrUnknownCommand = errors.New("unknown command")

// Dispatch invokes the named command.
func (m *Mux) Dispatch(ctx context.Context, req extension.Request) (extension.Response, error) {
	m.mu.RLock()
	reg, ok := m.commands[req.Command]
	m.mu.RUnlock()
	if !ok {
		return extension.Response{}, fmt.Errorf("%w: %q", ErrUnknownCommand, req.Command)
	}
	return reg.cmd.Handler(ctx, req)
}

// Commands lists every registered command, sorted by name.
func (m *Mux) Commands() []CommandInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()

	infos := make([]CommandInfo, 0, len(m.commands))
	for name, reg := range m.commands {
		infos = append(infos, CommandInfo{
			Name:        name,
			Description: reg.cmd.Description,
			Extension:   reg.owner,
			Emoji:       reg.emoji,
		})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}
