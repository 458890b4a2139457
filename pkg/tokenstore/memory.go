package tokenstore

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/recruitflow/pkg/auth"
)

// Memory — in-memory замена Redis для демо-режима и тестов.
type Memory struct {
	mu     sync.RWMutex
	tokens map[string]memoryEntry
}

type memoryEntry struct {
	userID    uuid.UUID
	expiresAt time.Time
}

func NewMemory() *Memory {
	return &Memory{tokens: make(map[string]memoryEntry)}
}

func (s *Memory) Save(_ context.Context, token string, userID uuid.UUID, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = memoryEntry{userID: userID, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (s *Memory) Get(_ context.Context, token string) (uuid.UUID, error) {
	s.mu.RLock()
	e, ok := s.tokens[token]
	s.mu.RUnlock()
	if !ok || time.Now().After(e.expiresAt) {
		return uuid.Nil, auth.ErrInvalidToken
	}
	return e.userID, nil
}

func (s *Memory) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, token)
	return nil
}
