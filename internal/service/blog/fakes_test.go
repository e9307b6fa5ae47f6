package blog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"inkpost/internal/content/render"
	"inkpost/internal/domain"
	models "inkpost/internal/domain/models/blog"
	"inkpost/internal/domain/repositories"
)

// memDB is an in-memory stand-in for the four tables.
type memDB struct {
	mu       sync.Mutex
	seq      int
	clock    time.Time
	users    map[string]*models.User
	blogs    map[string]*models.Blog
	comments map[string]*models.Comment
	likes    map[[2]string]bool // {blogID, userID}

	popularCalls int
}

func newMemDB() *memDB {
	return &memDB{
		clock:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		users:    map[string]*models.User{},
		blogs:    map[string]*models.Blog{},
		comments: map[string]*models.Comment{},
		likes:    map[[2]string]bool{},
	}
}

func (db *memDB) nextID(prefix string) string {
	db.seq++
	return fmt.Sprintf("%s-%d", prefix, db.seq)
}

// tick returns strictly increasing timestamps so ordering is deterministic.
func (db *memDB) tick() time.Time {
	db.clock = db.clock.Add(time.Minute)
	return db.clock
}

func (db *memDB) addUser(email string) *models.User {
	db.mu.Lock()
	defer db.mu.Unlock()
	u := &models.User{ID: db.nextID("user"), FirebaseID: "fb-" + email, Email: email, Name: email}
	db.users[u.ID] = u
	return u
}

func (db *memDB) view(b *models.Blog, viewerID string) models.Blog {
	out := *b
	out.Counts = models.Counts{}
	for k := range db.likes {
		if k[0] == b.ID {
			out.Counts.Likes++
		}
	}
	for _, c := range db.comments {
		if c.BlogID == b.ID {
			out.Counts.Comments++
		}
	}
	out.IsLiked = db.likes[[2]string{b.ID, viewerID}]
	if u, ok := db.users[b.AuthorID]; ok {
		out.Author = &models.Author{ID: u.ID, Name: u.Name, Email: u.Email}
	}
	return out
}

type memBlogRepo struct{ db *memDB }

func (r *memBlogRepo) Create(ctx context.Context, b *models.Blog) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, other := range r.db.blogs {
		if other.Slug == b.Slug {
			return &domain.ConflictError{Message: "slug taken", ResourceType: "blog", ResourceID: b.Slug}
		}
	}
	b.ID = r.db.nextID("blog")
	b.CreatedAt = r.db.tick()
	b.UpdatedAt = b.CreatedAt
	stored := *b
	r.db.blogs[b.ID] = &stored
	return nil
}

func (r *memBlogRepo) GetByID(ctx context.Context, id, viewerID string) (*models.Blog, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	b, ok := r.db.blogs[id]
	if !ok {
		return nil, &domain.NotFoundError{Message: "blog not found: " + id}
	}
	out := r.db.view(b, viewerID)
	return &out, nil
}

func (r *memBlogRepo) GetBySlug(ctx context.Context, slug, viewerID string) (*models.Blog, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, b := range r.db.blogs {
		if b.Slug == slug {
			out := r.db.view(b, viewerID)
			return &out, nil
		}
	}
	return nil, &domain.NotFoundError{Message: "blog not found: " + slug}
}

func (r *memBlogRepo) Update(ctx context.Context, b *models.Blog) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	stored, ok := r.db.blogs[b.ID]
	if !ok {
		return &domain.NotFoundError{Message: "blog not found: " + b.ID}
	}
	stored.Title, stored.Slug, stored.Content = b.Title, b.Slug, b.Content
	stored.Excerpt, stored.CoverImage, stored.Published = b.Excerpt, b.CoverImage, b.Published
	stored.UpdatedAt = b.UpdatedAt
	return nil
}

func (r *memBlogRepo) Delete(ctx context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.blogs[id]; !ok {
		return &domain.NotFoundError{Message: "blog not found: " + id}
	}
	delete(r.db.blogs, id)
	for cid, c := range r.db.comments {
		if c.BlogID == id {
			delete(r.db.comments, cid)
		}
	}
	return nil
}

func (r *memBlogRepo) List(ctx context.Context, filter models.ListFilter, viewerID string) ([]models.Blog, int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var matched []models.Blog
	for _, b := range r.db.blogs {
		if !filter.IncludeDrafts && !b.Published {
			continue
		}
		if filter.AuthorID != "" && b.AuthorID != filter.AuthorID {
			continue
		}
		if filter.AuthorEmail != "" {
			if u, ok := r.db.users[b.AuthorID]; !ok || u.Email != filter.AuthorEmail {
				continue
			}
		}
		matched = append(matched, r.db.view(b, viewerID))
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })

	total := len(matched)
	start := min(filter.Offset, total)
	end := min(start+filter.Limit, total)
	return matched[start:end], total, nil
}

func (r *memBlogRepo) ListPopular(ctx context.Context, limit int) ([]models.Blog, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.popularCalls++
	var out []models.Blog
	for _, b := range r.db.blogs {
		if b.Published {
			out = append(out, r.db.view(b, ""))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Views != out[j].Views {
			return out[i].Views > out[j].Views
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memBlogRepo) IncrementViews(ctx context.Context, id string) (int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	b, ok := r.db.blogs[id]
	if !ok {
		return 0, &domain.NotFoundError{Message: "blog not found: " + id}
	}
	b.Views++
	return b.Views, nil
}

func (r *memBlogRepo) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, b := range r.db.blogs {
		if b.Slug == slug && b.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

type memLikeRepo struct{ db *memDB }

func (r *memLikeRepo) Exists(ctx context.Context, blogID, userID string) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return r.db.likes[[2]string{blogID, userID}], nil
}

func (r *memLikeRepo) Create(ctx context.Context, blogID, userID string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	key := [2]string{blogID, userID}
	if r.db.likes[key] {
		return &domain.ConflictError{Message: "already liked", ResourceType: "like"}
	}
	r.db.likes[key] = true
	return nil
}

func (r *memLikeRepo) Delete(ctx context.Context, blogID, userID string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	key := [2]string{blogID, userID}
	if !r.db.likes[key] {
		return &domain.NotFoundError{Message: "like not found"}
	}
	delete(r.db.likes, key)
	return nil
}

type memCommentRepo struct{ db *memDB }

func (r *memCommentRepo) Create(ctx context.Context, c *models.Comment) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.blogs[c.BlogID]; !ok {
		return &domain.NotFoundError{Message: "blog not found: " + c.BlogID}
	}
	c.ID = r.db.nextID("comment")
	c.CreatedAt = r.db.tick()
	c.UpdatedAt = c.CreatedAt
	stored := *c
	r.db.comments[c.ID] = &stored
	return nil
}

func (r *memCommentRepo) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	c, ok := r.db.comments[id]
	if !ok {
		return nil, &domain.NotFoundError{Message: "comment not found: " + id}
	}
	out := *c
	if u, ok := r.db.users[c.AuthorID]; ok {
		out.Author = &models.Author{ID: u.ID, Name: u.Name}
	}
	return &out, nil
}

func (r *memCommentRepo) ListByBlog(ctx context.Context, blogID string) ([]models.Comment, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := []models.Comment{}
	for _, c := range r.db.comments {
		if c.BlogID == blogID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *memCommentRepo) Delete(ctx context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.comments[id]; !ok {
		return &domain.NotFoundError{Message: "comment not found: " + id}
	}
	delete(r.db.comments, id)
	for cid, c := range r.db.comments {
		if c.ParentID != nil && *c.ParentID == id {
			delete(r.db.comments, cid)
		}
	}
	return nil
}

type memUserRepo struct{ db *memDB }

func (r *memUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	u, ok := r.db.users[id]
	if !ok {
		return nil, &domain.NotFoundError{Message: "user not found: " + id}
	}
	out := *u
	return &out, nil
}

func (r *memUserRepo) GetByFirebaseID(ctx context.Context, firebaseID string) (*models.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, u := range r.db.users {
		if u.FirebaseID == firebaseID {
			out := *u
			return &out, nil
		}
	}
	return nil, &domain.NotFoundError{Message: "user not found: " + firebaseID}
}

func (r *memUserRepo) Create(ctx context.Context, u *models.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, other := range r.db.users {
		if other.FirebaseID == u.FirebaseID || other.Email == u.Email {
			return &domain.ConflictError{Message: "user exists", ResourceType: "user"}
		}
	}
	u.ID = r.db.nextID("user")
	stored := *u
	r.db.users[u.ID] = &stored
	return nil
}

func (r *memUserRepo) GetProfile(ctx context.Context, id string) (*models.UserProfile, error) {
	u, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	p := &models.UserProfile{User: *u}
	for _, b := range r.db.blogs {
		if b.AuthorID == id {
			p.Counts.Blogs++
		}
	}
	for _, c := range r.db.comments {
		if c.AuthorID == id {
			p.Counts.Comments++
		}
	}
	return p, nil
}

// inlineTx runs fn directly; the fakes have no transactions.
type inlineTx struct{}

func (inlineTx) ExecTx(ctx context.Context, fn repositories.TxFn) error { return fn(ctx) }

type fixture struct {
	db       *memDB
	blogs    *blogService
	comments *commentService
	users    *userService
}

func newFixture() *fixture {
	db := newMemDB()
	blogRepo := &memBlogRepo{db: db}
	commentRepo := &memCommentRepo{db: db}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	authorizer := NewOwnerAuthorizer(blogRepo, commentRepo)

	return &fixture{
		db: db,
		blogs: NewBlogService(blogRepo, &memLikeRepo{db: db}, inlineTx{}, authorizer,
			render.New("http://localhost:4000"), Options{PopularTTL: time.Minute, ViewWindow: time.Hour}, logger).(*blogService),
		comments: NewCommentService(commentRepo, authorizer, logger).(*commentService),
		users:    NewUserService(&memUserRepo{db: db}, blogRepo, logger).(*userService),
	}
}
