package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkpost/internal/content"
	"inkpost/internal/content/catalog"
	"inkpost/internal/content/render"
	"inkpost/internal/domain"
	"inkpost/internal/domain/models/blog"
	blogSvc "inkpost/internal/domain/services/blog"
	"inkpost/internal/editor"
	"inkpost/internal/httputil"
	"inkpost/internal/service/upload"
)

func discard() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

// stubBlogs implements the blog service calls the tests exercise; any
// other call panics through the nil embedded interface.
type stubBlogs struct {
	blogSvc.BlogService

	created   *blogSvc.CreateBlogRequest
	updated   *blogSvc.UpdateBlogRequest
	listReq   *blogSvc.ListBlogsRequest
	viewKey   string
	getErr    error
	likeState bool
}

func (s *stubBlogs) CreateBlog(ctx context.Context, userID string, req *blogSvc.CreateBlogRequest) (*blog.Blog, error) {
	s.created = req
	return &blog.Blog{ID: "b1", Title: req.Title, Slug: "t", AuthorID: userID, Content: req.Content}, nil
}

func (s *stubBlogs) ListBlogs(ctx context.Context, viewerID string, req *blogSvc.ListBlogsRequest) (*blog.Page, error) {
	s.listReq = req
	return blog.NewPage(nil, 0, req.Limit), nil
}

func (s *stubBlogs) GetBlogBySlug(ctx context.Context, viewerID, viewKey, slug string) (*blog.Blog, error) {
	s.viewKey = viewKey
	if s.getErr != nil {
		return nil, s.getErr
	}
	return &blog.Blog{ID: "b1", Slug: slug, Published: true}, nil
}

func (s *stubBlogs) UpdateBlog(ctx context.Context, userID, id string, req *blogSvc.UpdateBlogRequest) (*blog.Blog, error) {
	s.updated = req
	return &blog.Blog{ID: id}, nil
}

func (s *stubBlogs) ToggleLike(ctx context.Context, userID, blogID string) (bool, error) {
	s.likeState = !s.likeState
	return s.likeState, nil
}

// memStore is an in-memory editor.Store.
type memStore struct {
	saved map[string]editor.Snapshot
}

func (m *memStore) SaveDraft(ctx context.Context, authorID string, s editor.Snapshot) (string, error) {
	if s.BlogID == "" {
		s.BlogID = "blog-new"
	}
	m.saved[s.BlogID] = s
	return s.BlogID, nil
}

func (m *memStore) LoadDraft(ctx context.Context, authorID, blogID string) (editor.Snapshot, error) {
	s, ok := m.saved[blogID]
	if !ok {
		return editor.Snapshot{}, &domain.NotFoundError{Message: "blog not found"}
	}
	return s, nil
}

type testServer struct {
	mux    *http.ServeMux
	blogs  *stubBlogs
	store  *memStore
	images *upload.ImageStore
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	logger := discard()
	renderer := render.New("http://localhost:4000")
	cat, err := catalog.Load()
	require.NoError(t, err)
	images, err := upload.NewImageStore(t.TempDir(), 1<<20, logger)
	require.NoError(t, err)

	ts := &testServer{
		mux:    http.NewServeMux(),
		blogs:  &stubBlogs{},
		store:  &memStore{saved: map[string]editor.Snapshot{}},
		images: images,
	}
	Register(ts.mux, &Handlers{
		Health:  NewHealthHandler(nil, logger),
		Blog:    NewBlogHandler(ts.blogs, logger),
		Comment: NewCommentHandler(nil, logger),
		User:    NewUserHandler(nil, logger),
		Upload:  NewUploadHandler(images, 1<<20, logger),
		Content: NewContentHandler(renderer, cat, logger),
		Draft:   NewDraftHandler(editor.NewRegistry(renderer, time.Hour, logger), ts.store, cat, logger),
	})
	return ts
}

// do sends a request as userID ("" for anonymous) and returns the recorder.
func (ts *testServer) do(t *testing.T, method, path, userID string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if userID != "" {
		req = httputil.WithUser(req, userID, userID+"@example.com")
	}
	rec := httptest.NewRecorder()
	ts.mux.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode[map[string]string](t, rec)["status"])
}

func TestBlogRoutes_RequireAuthForWrites(t *testing.T) {
	ts := newTestServer(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodPost, "/api/blogs"},
		{http.MethodPatch, "/api/blogs/b1"},
		{http.MethodDelete, "/api/blogs/b1"},
		{http.MethodPost, "/api/blogs/b1/like"},
		{http.MethodPost, "/api/comments"},
		{http.MethodPost, "/api/drafts"},
		{http.MethodPost, "/api/uploads/image"},
	} {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			rec := ts.do(t, tc.method, tc.path, "", `{}`)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
		})
	}
}

func TestCreateBlog_AcceptsSectionArray(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/blogs", "u1", `{
		"title": "Hello",
		"content": [{"id":"s1","type":"text","layout":"single","content":"hi"}],
		"published": true
	}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	require.NotNil(t, ts.blogs.created)
	decoded := content.Decode(ts.blogs.created.Content)
	require.True(t, decoded.IsStructured())
	assert.Equal(t, []string{"s1"}, decoded.Document.IDs())
	assert.True(t, ts.blogs.created.Published)
}

func TestCreateBlog_RejectsBadContent(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.do(t, http.MethodPost, "/api/blogs", "u1", `{"title":"x","content":42}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListBlogs_ClampsQuery(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/blogs?page=-3&limit=500&author=a@example.com", "u1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	req := ts.blogs.listReq
	assert.Equal(t, 1, req.Page)
	assert.Equal(t, 50, req.Limit)
	assert.Equal(t, "a@example.com", req.Author)
	assert.Equal(t, "u1@example.com", req.ViewerEmail)
}

func TestGetBlogBySlug(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/blogs/my-post", "u1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "my-post", decode[blog.Blog](t, rec).Slug)
	assert.Equal(t, "user:u1", ts.blogs.viewKey)

	ts.blogs.getErr = &domain.NotFoundError{Message: "blog not found: nope"}
	rec = ts.do(t, http.MethodGet, "/api/blogs/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateBlog_TriStateFields(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPatch, "/api/blogs/b1", "u1", `{"excerpt":null,"title":"New"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	req := ts.blogs.updated
	require.NotNil(t, req.Excerpt, "null clears the excerpt")
	assert.Equal(t, "", *req.Excerpt)
	assert.Nil(t, req.CoverImage, "absent leaves the cover image alone")
	assert.Nil(t, req.Content)
	assert.Equal(t, "New", *req.Title)
}

func TestToggleLike(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/blogs/b1/like", "u1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]bool{"liked": true}, decode[map[string]bool](t, rec))

	rec = ts.do(t, http.MethodPost, "/api/blogs/b1/like", "u1", nil)
	assert.Equal(t, map[string]bool{"liked": false}, decode[map[string]bool](t, rec))
}

func TestContentPreviewAndSummary(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/content/preview", "", map[string]interface{}{
		"content": []map[string]interface{}{{"id": "a", "type": "text", "layout": "single", "content": "**bold**"}},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	out := decode[render.Output](t, rec)
	assert.Equal(t, "preview", out.Mode)
	require.Len(t, out.Sections, 1)
	assert.Contains(t, string(out.Sections[0].HTML), "<strong>bold</strong>")

	rec = ts.do(t, http.MethodPost, "/api/content/summary", "", map[string]interface{}{
		"content": `[{"id":"a","type":"header","layout":"single","content":"Title"},{"id":"b","type":"text","layout":"single","content":"Body text"}]`,
		"budget":  7,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Title B"+content.Ellipsis, decode[summaryResponse](t, rec).Summary)

	rec = ts.do(t, http.MethodPost, "/api/content/summary", "", map[string]string{"content": "just legacy text"})
	assert.Equal(t, "", decode[summaryResponse](t, rec).Summary)
}

func TestContentCatalog(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.do(t, http.MethodGet, "/api/content/catalog", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	palette := decode[catalog.Palette](t, rec)
	assert.Len(t, palette.Sections, len(content.Kinds))
}

func TestDraftLifecycle(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/drafts", "u1", nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	draftID := decode[editor.State](t, rec).ID
	base := "/api/drafts/" + draftID

	var ids []string
	for _, kind := range []string{"header", "text", "two-column"} {
		rec = ts.do(t, http.MethodPost, base+"/sections", "u1", map[string]string{"type": kind})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		ids = append(ids, decode[content.Section](t, rec).ID)
	}

	rec = ts.do(t, http.MethodPatch, base+"/sections/"+ids[0], "u1", `{"content":"Hello"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = ts.do(t, http.MethodPatch, base+"/sections/"+ids[0], "u1", `{"type":"code"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "kind is immutable")

	rec = ts.do(t, http.MethodPatch, base+"/sections/missing", "u1", `{}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.do(t, http.MethodPatch, base+"/sections/"+ids[2], "u1", `{"content":"leak"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "two-column takes side fields only")

	// drag the two-column section to the top
	rec = ts.do(t, http.MethodPost, base+"/drag", "u1", map[string]int{"index": 2})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[editor.State](t, rec).Controls[2].Dragging)

	rec = ts.do(t, http.MethodPost, base+"/drop", "u1", map[string]int{"index": 0})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{ids[2], ids[0], ids[1]}, decode[editor.State](t, rec).Sections.IDs())

	rec = ts.do(t, http.MethodPost, base+"/drop", "u1", map[string]int{"index": 1})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "nothing is being dragged")

	rec = ts.do(t, http.MethodPost, base+"/sections/"+ids[2]+"/move-down", "u1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{ids[0], ids[2], ids[1]}, decode[editor.State](t, rec).Sections.IDs())

	rec = ts.do(t, http.MethodPost, base+"/save", "u1", `{"publish":true}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "title is required")

	rec = ts.do(t, http.MethodPut, base+"/meta", "u1", map[string]string{"title": "My post"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodGet, base+"/preview", "u1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "preview", decode[render.Output](t, rec).Mode)

	rec = ts.do(t, http.MethodPost, base+"/save", "u1", `{"publish":true}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	state := decode[editor.State](t, rec)
	assert.Equal(t, "blog-new", state.BlogID)
	assert.True(t, state.Published)

	saved := ts.store.saved["blog-new"]
	assert.Equal(t, "My post", saved.Title)
	assert.Equal(t, []string{ids[0], ids[2], ids[1]}, content.Decode(saved.Content).Document.IDs())

	// other authors cannot see the session
	rec = ts.do(t, http.MethodGet, base, "u2", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.do(t, http.MethodDelete, base, "u1", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = ts.do(t, http.MethodGet, base, "u1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDraftOpenExisting(t *testing.T) {
	ts := newTestServer(t)
	doc := content.Document{content.NewSection(content.KindText, content.LayoutSingle)}
	ts.store.saved["b7"] = editor.Snapshot{BlogID: "b7", Title: "Old", Content: content.Encode(doc)}

	rec := ts.do(t, http.MethodPost, "/api/drafts", "u1", map[string]string{"blogId": "b7"})
	require.Equal(t, http.StatusCreated, rec.Code)
	state := decode[editor.State](t, rec)
	assert.Equal(t, "b7", state.BlogID)
	assert.Equal(t, "Old", state.Meta.Title)
	assert.Equal(t, doc.IDs(), state.Sections.IDs())

	rec = ts.do(t, http.MethodPost, "/api/drafts", "u1", map[string]string{"blogId": "missing"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUploadImage(t *testing.T) {
	ts := newTestServer(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "pixel.png")
	require.NoError(t, err)
	_, err = part.Write(pngPixel)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/uploads/image", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req = httputil.WithUser(req, "u1", "u1@example.com")
	rec := httptest.NewRecorder()
	ts.mux.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	saved := decode[upload.Upload](t, rec)
	assert.Equal(t, "image/png", saved.MIMEType)

	rec = ts.do(t, http.MethodGet, saved.URL, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, pngPixel, rec.Body.Bytes())

	rec = ts.do(t, http.MethodGet, "/uploads/.hidden", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// 1x1 transparent PNG
var pngPixel = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89, 0x00, 0x00, 0x00,
	0x0d, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x49,
	0x45, 0x4e, 0x44, 0xae, 0x42, 0x60, 0x82,
}
