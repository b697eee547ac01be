package database

import (
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/rpupo63/readinglog/models"
)

// PostStore keeps blog posts in process memory. Posts are lost on restart.
// Concurrent edits of the same post are last-write-wins.
type PostStore struct {
	mu     sync.RWMutex
	posts  []*models.Post
	nextID int64
	now    func() time.Time
}

type PostStoreOption func(*PostStore)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) PostStoreOption {
	return func(s *PostStore) {
		s.now = now
	}
}

func NewPostStore(opts ...PostStoreOption) *PostStore {
	s := &PostStore{nextID: 1, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns copies of every post, most recently updated first.
func (s *PostStore) List() []models.Post {
	s.mu.RLock()
	out := make([]models.Post, 0, len(s.posts))
	for _, p := range s.posts {
		out = append(out, *p)
	}
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		}
		return idLess(out[j].ID, out[i].ID)
	})
	return out
}

func (s *PostStore) Find(id string) (models.Post, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if p := s.find(id); p != nil {
		return *p, true
	}
	return models.Post{}, false
}

func (s *PostStore) Create(in models.PostInput) models.Result[models.Post] {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return models.Rejected[models.Post](validationMessage(err))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	post := &models.Post{
		ID:        strconv.FormatInt(s.nextID, 10),
		Title:     in.Title,
		Content:   in.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.nextID++
	s.posts = append(s.posts, post)
	return models.Persisted(*post)
}

// Update reports OutcomeNotFound before looking at the input, so a missing id is
// never turned into a validation error.
func (s *PostStore) Update(id string, in models.PostInput) models.Result[models.Post] {
	s.mu.Lock()
	defer s.mu.Unlock()

	post := s.find(id)
	if post == nil {
		return models.NotFound[models.Post]()
	}

	in = in.Normalize()
	if err := in.Validate(); err != nil {
		res := models.Rejected[models.Post](validationMessage(err))
		res.Record = *post
		return res
	}

	post.Title = in.Title
	post.Content = in.Content
	post.UpdatedAt = s.now()
	return models.Persisted(*post)
}

// Delete removes the post if present.
func (s *PostStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.posts {
		if p.ID == id {
			s.posts = append(s.posts[:i], s.posts[i+1:]...)
			return
		}
	}
}

// Len reports how many posts are stored.
func (s *PostStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.posts)
}

func (s *PostStore) find(id string) *models.Post {
	for _, p := range s.posts {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// idLess compares counter ids numerically.
func idLess(a, b string) bool {
	ai, errA := strconv.ParseInt(a, 10, 64)
	bi, errB := strconv.ParseInt(b, 10, 64)
	if errA != nil || errB != nil {
		return a < b
	}
	return ai < bi
}
