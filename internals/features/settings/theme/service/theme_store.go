package service

import (
	"context"
	"sync"
	"time"

	"cra_backend/internals/features/settings/theme/model"
)

type Repository interface {
	Load(ctx context.Context) (*model.ThemeSettingModel, error)
	Save(ctx context.Context, m *model.ThemeSettingModel) error
}

type Setting struct {
	Theme     string    `json:"theme"`
	Automatic bool      `json:"automatic"`
	UpdatedAt time.Time `json:"updated_at"`
}

func fromModel(m *model.ThemeSettingModel) Setting {
	return Setting{Theme: m.ThemeSettingTheme, Automatic: m.ThemeSettingAutomatic, UpdatedAt: m.ThemeSettingUpdatedAt}
}

// ThemeStore owns the process-wide theme. Reads are served from memory after
// the first load; writes go to the repository first and are then published
// to subscribers.
type ThemeStore struct {
	repo Repository
	now  func() time.Time

	mu      sync.RWMutex
	current *Setting
	subs    map[int]chan Setting
	nextID  int
}

func NewThemeStore(repo Repository, now func() time.Time) *ThemeStore {
	if now == nil {
		now = time.Now
	}
	return &ThemeStore{repo: repo, now: now, subs: make(map[int]chan Setting)}
}

func (s *ThemeStore) Get(ctx context.Context) (Setting, error) {
	s.mu.RLock()
	cur := s.current
	s.mu.RUnlock()
	if cur != nil {
		return *cur, nil
	}

	m, err := s.repo.Load(ctx)
	if err != nil {
		return Setting{}, err
	}
	v := fromModel(m)

	s.mu.Lock()
	if s.current == nil {
		s.current = &v
	}
	v = *s.current
	s.mu.Unlock()
	return v, nil
}

func (s *ThemeStore) Set(ctx context.Context, theme string, automatic bool) (Setting, error) {
	m := &model.ThemeSettingModel{
		ThemeSettingID:        model.ThemeSingletonID,
		ThemeSettingTheme:     theme,
		ThemeSettingAutomatic: automatic,
		ThemeSettingUpdatedAt: s.now(),
	}
	if err := s.repo.Save(ctx, m); err != nil {
		return Setting{}, err
	}
	v := fromModel(m)

	s.mu.Lock()
	s.current = &v
	for _, ch := range s.subs {
		publish(ch, v)
	}
	s.mu.Unlock()
	return v, nil
}

// Subscribe returns a channel that always holds the latest change; a slow
// reader skips intermediate values. cancel closes the channel.
func (s *ThemeStore) Subscribe() (<-chan Setting, func()) {
	ch := make(chan Setting, 1)

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = ch
	s.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			close(ch)
			s.mu.Unlock()
		})
	}
	return ch, cancel
}

func publish(ch chan Setting, v Setting) {
	select {
	case ch <- v:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- v:
	default:
	}
}
