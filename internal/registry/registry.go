// Package registry provides a global registry for theme factories.
// Themes register themselves in init() functions, allowing the platform
// to discover and instantiate them without hardcoded dependencies.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/skyrunner/internal/parallax"
)

// ErrUnknownTheme is returned by Create for an unregistered id.
var ErrUnknownTheme = errors.New("registry: unknown theme")

// ThemeInfo contains metadata about a registered theme.
type ThemeInfo struct {
	ID         string
	Name       string
	Background string
	Layers     int
}

// Factory is a function that builds a fresh theme value.
type Factory func() *parallax.Theme

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]ThemeInfo)
	order     = make(map[string]int)
	mu        sync.RWMutex
)

// Register adds a theme factory to the registry.
// Typically called from a theme's init() function.
// Panics if a theme with the same ID is already registered or if the
// factory builds a theme with a different ID.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: theme %q already registered", id))
	}

	th := f()
	if th.ID != id {
		panic(fmt.Sprintf("registry: factory for %q builds theme %q", id, th.ID))
	}

	factories[id] = f
	order[id] = len(order)
	infos[id] = ThemeInfo{
		ID:         id,
		Name:       th.Name,
		Background: th.Background,
		Layers:     len(th.Layers),
	}
}

// List returns information about all registered themes in registration order.
func List() []ThemeInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]ThemeInfo, 0, len(factories))
	for id := range factories {
		result = append(result, infos[id])
	}

	sort.Slice(result, func(i, j int) bool {
		return order[result[i].ID] < order[result[j].ID]
	})

	return result
}

// Create instantiates a theme by its ID.
func Create(id string) (*parallax.Theme, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownTheme, id)
	}

	return f(), nil
}

// Exists checks if a theme with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}

// Default returns the first registered theme id, or "" when none exist.
func Default() string {
	list := List()
	if len(list) == 0 {
		return ""
	}
	return list[0].ID
}
