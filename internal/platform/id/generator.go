package id

import (
	"fmt"

	"github.com/google/uuid"
)

// Generator creates opaque IDs suitable for external references.
type Generator interface {
	NewID() (string, error)
}

type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) NewID() (string, error) {
	v, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate uuid: %w", err)
	}
	return v.String(), nil
}

// StaticGenerator returns ids from a fixed list, then fails. Useful in tests.
type StaticGenerator struct {
	IDs  []string
	next int
}

func (g *StaticGenerator) NewID() (string, error) {
	if g.next >= len(g.IDs) {
		return "", fmt.Errorf("static generator exhausted after %d ids", len(g.IDs))
	}
	v := g.IDs[g.next]
	g.next++
	return v, nil
}
