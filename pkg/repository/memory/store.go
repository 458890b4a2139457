package memory

import (
	"sync"

	"github.com/google/uuid"

	"github.com/artem13815/recruitflow/pkg/auth"
	"github.com/artem13815/recruitflow/pkg/candidate"
	"github.com/artem13815/recruitflow/pkg/job"
	"github.com/artem13815/recruitflow/pkg/message"
	"github.com/artem13815/recruitflow/pkg/resume"
	"github.com/artem13815/recruitflow/pkg/settings"
)

// Store — общее in-memory хранилище для демо-режима (без Postgres)
// и тестов. Все репозитории-порты смотрят в одни и те же данные,
// поэтому org-скоупные выборки работают как в БД.
type Store struct {
	mu sync.RWMutex

	users      map[uuid.UUID]auth.User
	candidates map[uuid.UUID]candidate.Candidate
	resumes    map[uuid.UUID]resume.Resume
	messages   map[uuid.UUID]message.Message
	msgOrder   []uuid.UUID // порядок вставки сообщений
	jobs       map[uuid.UUID]job.Job
	jobOrder   []uuid.UUID
	settings   map[uuid.UUID]settings.Settings
}

func NewStore() *Store {
	return &Store{
		users:      make(map[uuid.UUID]auth.User),
		candidates: make(map[uuid.UUID]candidate.Candidate),
		resumes:    make(map[uuid.UUID]resume.Resume),
		messages:   make(map[uuid.UUID]message.Message),
		jobs:       make(map[uuid.UUID]job.Job),
		settings:   make(map[uuid.UUID]settings.Settings),
	}
}

func (s *Store) Users() *UserRepo           { return &UserRepo{s} }
func (s *Store) Candidates() *CandidateRepo { return &CandidateRepo{s} }
func (s *Store) Resumes() *ResumeRepo       { return &ResumeRepo{s} }
func (s *Store) Messages() *MessageRepo     { return &MessageRepo{s} }
func (s *Store) Jobs() *JobRepo             { return &JobRepo{s} }
func (s *Store) Settings() *SettingsRepo    { return &SettingsRepo{s} }
