// server.go implements an in-memory fake of the roadmap backend for tests.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/waymark-dev/waymark/internal/roadmap"
)

// Server is a fake roadmap backend running on httptest. All state lives
// in memory and is guarded by one mutex; tests seed it directly through
// the exported helpers.
type Server struct {
	*httptest.Server

	// Paginated wraps list responses in {"results": [...]} when true.
	Paginated bool

	mu          sync.Mutex
	items       []roadmap.Item
	comments    map[int64][]roadmap.Comment // item id -> flat list
	commentItem map[int64]int64             // comment id -> item id
	upvoters    map[int64]map[string]bool   // item id -> usernames
	users       map[string]roadmap.User     // by username
	passwords   map[string]string
	tokens      map[string]string // token -> username
	nextComment int64
	nextUser    int64
	nextToken   int
}

// NewServer starts a fake backend with empty state.
func NewServer() *Server {
	s := &Server{
		comments:    make(map[int64][]roadmap.Comment),
		commentItem: make(map[int64]int64),
		upvoters:    make(map[int64]map[string]bool),
		users:       make(map[string]roadmap.User),
		passwords:   make(map[string]string),
		tokens:      make(map[string]string),
		nextComment: 1,
		nextUser:    1,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login/{$}", s.handleLogin)
	mux.HandleFunc("POST /auth/register/{$}", s.handleRegister)
	mux.HandleFunc("POST /auth/logout/{$}", s.handleLogout)
	mux.HandleFunc("GET /auth/profile/{$}", s.handleProfile)
	mux.HandleFunc("GET /roadmap/{$}", s.handleList)
	mux.HandleFunc("GET /roadmap/{id}/{$}", s.handleGet)
	mux.HandleFunc("POST /roadmap/{id}/upvote/{$}", s.handleUpvote)
	mux.HandleFunc("GET /roadmap/{id}/comments/{$}", s.handleListComments)
	mux.HandleFunc("POST /roadmap/{id}/comments/{$}", s.handleCreateComment)
	mux.HandleFunc("PUT /comments/{id}/{$}", s.handleUpdateComment)
	mux.HandleFunc("DELETE /comments/{id}/{$}", s.handleDeleteComment)

	s.Server = httptest.NewServer(mux)
	return s
}

// ============================================================================
// Seeding helpers
// ============================================================================

// AddUser registers a user with a password and returns a live token.
func (s *Server) AddUser(username, password string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := NewUser(s.nextUser, username)
	s.nextUser++
	s.users[username] = user
	s.passwords[username] = password
	return s.issueToken(username)
}

// AddItem seeds a roadmap item.
func (s *Server) AddItem(item roadmap.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, item)
}

// AddComment seeds a comment on an item and returns its id.
func (s *Server) AddComment(itemID int64, username, content string, parentID *int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := NewComment(s.nextComment, s.users[username], content, parentID)
	s.nextComment++
	s.comments[itemID] = append(s.comments[itemID], c)
	s.commentItem[c.ID] = itemID
	return c.ID
}

// RevokeTokens invalidates every issued token, so the next authenticated
// request fails with 401.
func (s *Server) RevokeTokens() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = make(map[string]string)
}

func (s *Server) issueToken(username string) string {
	s.nextToken++
	token := fmt.Sprintf("tok-%s-%d", username, s.nextToken)
	s.tokens[token] = username
	return token
}

// ============================================================================
// Handlers
// ============================================================================

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, 400, map[string]any{"error": "malformed request body"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.passwords[body.Username] == "" || s.passwords[body.Username] != body.Password {
		writeJSON(w, 400, map[string]any{
			"non_field_errors": []string{"Unable to log in with provided credentials."},
		})
		return
	}

	writeJSON(w, 200, map[string]any{
		"token": s.issueToken(body.Username),
		"user":  s.users[body.Username],
	})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username        string `json:"username"`
		Email           string `json:"email"`
		Password        string `json:"password"`
		PasswordConfirm string `json:"password_confirm"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, 400, map[string]any{"error": "malformed request body"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if body.Password != body.PasswordConfirm {
		writeJSON(w, 400, map[string]any{"password": []string{"Passwords do not match."}})
		return
	}
	if _, exists := s.users[body.Username]; exists {
		writeJSON(w, 400, map[string]any{"username": []string{"A user with that username already exists."}})
		return
	}

	user := NewUser(s.nextUser, body.Username)
	user.Email = body.Email
	s.nextUser++
	s.users[body.Username] = user
	s.passwords[body.Username] = body.Password

	writeJSON(w, 201, map[string]any{
		"token": s.issueToken(body.Username),
		"user":  user,
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token := bearerToken(r)
	if _, ok := s.tokens[token]; !ok {
		writeUnauthorized(w)
		return
	}
	delete(s.tokens, token)
	writeJSON(w, 200, map[string]any{"message": "Logged out."})
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.requester(r)
	if !ok {
		writeUnauthorized(w)
		return
	}
	writeJSON(w, 200, user)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	viewer, _ := s.requester(r)
	q := r.URL.Query()

	var out []roadmap.Item
	for _, item := range s.items {
		if v := q.Get("status"); v != "" && string(item.Status) != v {
			continue
		}
		if v := q.Get("category"); v != "" && string(item.Category) != v {
			continue
		}
		if v := q.Get("search"); v != "" {
			needle := strings.ToLower(v)
			if !strings.Contains(strings.ToLower(item.Title), needle) &&
				!strings.Contains(strings.ToLower(item.Description), needle) {
				continue
			}
		}
		out = append(out, s.decorate(item, viewer))
	}

	sortItems(out, q.Get("ordering"))

	if s.Paginated {
		writeJSON(w, 200, map[string]any{"count": len(out), "results": out})
		return
	}
	writeJSON(w, 200, out)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	viewer, _ := s.requester(r)
	item, ok := s.findItem(r.PathValue("id"))
	if !ok {
		writeJSON(w, 404, map[string]any{"detail": "Not found."})
		return
	}
	writeJSON(w, 200, s.decorate(item, viewer))
}

func (s *Server) handleUpvote(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	viewer, ok := s.requester(r)
	if !ok {
		writeUnauthorized(w)
		return
	}
	item, found := s.findItem(r.PathValue("id"))
	if !found {
		writeJSON(w, 404, map[string]any{"detail": "Not found."})
		return
	}

	voters := s.upvoters[item.ID]
	if voters == nil {
		voters = make(map[string]bool)
		s.upvoters[item.ID] = voters
	}
	upvoted := !voters[viewer.Username]
	voters[viewer.Username] = upvoted
	if !upvoted {
		delete(voters, viewer.Username)
	}

	writeJSON(w, 200, roadmap.UpvoteResult{
		UpvoteCount: len(voters),
		Upvoted:     upvoted,
	})
}

func (s *Server) handleListComments(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	viewer, _ := s.requester(r)
	item, ok := s.findItem(r.PathValue("id"))
	if !ok {
		writeJSON(w, 404, map[string]any{"detail": "Not found."})
		return
	}

	list := s.comments[item.ID]
	out := make([]roadmap.Comment, len(list))
	for i, c := range list {
		out[i] = s.decorateComment(c, item.ID, viewer)
	}

	if s.Paginated {
		writeJSON(w, 200, map[string]any{"count": len(out), "results": out})
		return
	}
	writeJSON(w, 200, out)
}

func (s *Server) handleCreateComment(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	viewer, ok := s.requester(r)
	if !ok {
		writeUnauthorized(w)
		return
	}
	item, found := s.findItem(r.PathValue("id"))
	if !found {
		writeJSON(w, 404, map[string]any{"detail": "Not found."})
		return
	}

	var body struct {
		Content       string `json:"content"`
		ParentComment *int64 `json:"parent_comment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, 400, map[string]any{"error": "malformed request body"})
		return
	}
	if msg, ok := validateContent(body.Content); !ok {
		writeJSON(w, 400, map[string]any{"content": []string{msg}})
		return
	}

	c := roadmap.Comment{
		ID:            s.nextComment,
		User:          viewer,
		Content:       body.Content,
		ParentComment: body.ParentComment,
		CreatedAt:     time.Now().UTC(),
		UpdatedAt:     time.Now().UTC(),
	}
	s.nextComment++
	s.comments[item.ID] = append(s.comments[item.ID], c)
	s.commentItem[c.ID] = item.ID

	writeJSON(w, 201, s.decorateComment(c, item.ID, viewer))
}

func (s *Server) handleUpdateComment(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	viewer, ok := s.requester(r)
	if !ok {
		writeUnauthorized(w)
		return
	}

	_, itemID, idx, found := s.findComment(r.PathValue("id"))
	if !found {
		writeJSON(w, 404, map[string]any{"detail": "Not found."})
		return
	}

	if s.comments[itemID][idx].User.Username != viewer.Username {
		writeJSON(w, 403, map[string]any{"detail": "You do not have permission to perform this action."})
		return
	}

	var body struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, 400, map[string]any{"error": "malformed request body"})
		return
	}
	if msg, ok := validateContent(body.Content); !ok {
		writeJSON(w, 400, map[string]any{"content": []string{msg}})
		return
	}

	s.comments[itemID][idx].Content = body.Content
	s.comments[itemID][idx].UpdatedAt = time.Now().UTC().Add(2 * time.Second)

	writeJSON(w, 200, s.decorateComment(s.comments[itemID][idx], itemID, viewer))
}

func (s *Server) handleDeleteComment(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	viewer, ok := s.requester(r)
	if !ok {
		writeUnauthorized(w)
		return
	}

	commentID, itemID, idx, found := s.findComment(r.PathValue("id"))
	if !found {
		writeJSON(w, 404, map[string]any{"detail": "Not found."})
		return
	}

	if s.comments[itemID][idx].User.Username != viewer.Username {
		writeJSON(w, 403, map[string]any{"detail": "You do not have permission to perform this action."})
		return
	}

	s.comments[itemID] = append(s.comments[itemID][:idx], s.comments[itemID][idx+1:]...)
	delete(s.commentItem, commentID)
	w.WriteHeader(204)
}

// ============================================================================
// Internal helpers (callers hold the mutex)
// ============================================================================

func (s *Server) requester(r *http.Request) (roadmap.User, bool) {
	username, ok := s.tokens[bearerToken(r)]
	if !ok {
		return roadmap.User{}, false
	}
	return s.users[username], true
}

func (s *Server) findItem(idStr string) (roadmap.Item, bool) {
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return roadmap.Item{}, false
	}
	for _, item := range s.items {
		if item.ID == id {
			return item, true
		}
	}
	return roadmap.Item{}, false
}

func (s *Server) findComment(idStr string) (commentID, itemID int64, idx int, found bool) {
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return 0, 0, 0, false
	}
	itemID, ok := s.commentItem[id]
	if !ok {
		return 0, 0, 0, false
	}
	for i, c := range s.comments[itemID] {
		if c.ID == id {
			return id, itemID, i, true
		}
	}
	return 0, 0, 0, false
}

// decorate fills the viewer-dependent item fields.
func (s *Server) decorate(item roadmap.Item, viewer roadmap.User) roadmap.Item {
	voters := s.upvoters[item.ID]
	item.UpvoteCount = len(voters)
	item.UserUpvoted = viewer.Username != "" && voters[viewer.Username]
	item.CommentsCount = len(s.comments[item.ID])
	return item
}

// decorateComment fills the viewer-dependent comment fields. Replies are
// allowed up to two levels below a top-level comment.
func (s *Server) decorateComment(c roadmap.Comment, itemID int64, viewer roadmap.User) roadmap.Comment {
	depth := 0
	parent := c.ParentComment
	for parent != nil && depth < 10 {
		depth++
		next := (*int64)(nil)
		for _, other := range s.comments[itemID] {
			if other.ID == *parent {
				next = other.ParentComment
				break
			}
		}
		parent = next
	}

	c.DepthLevel = depth
	c.IsReply = c.ParentComment != nil
	c.CanReply = depth < 2
	c.CanEdit = viewer.Username != "" && c.User.Username == viewer.Username
	return c
}

func sortItems(items []roadmap.Item, ordering string) {
	switch ordering {
	case roadmap.OrderMostUpvoted:
		sort.SliceStable(items, func(i, j int) bool { return items[i].UpvoteCount > items[j].UpvoteCount })
	case roadmap.OrderLeastUpvoted:
		sort.SliceStable(items, func(i, j int) bool { return items[i].UpvoteCount < items[j].UpvoteCount })
	case roadmap.OrderOldest:
		sort.SliceStable(items, func(i, j int) bool { return items[i].CreatedAt.Before(items[j].CreatedAt) })
	default: // newest first
		sort.SliceStable(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	}
}

func validateContent(content string) (string, bool) {
	if strings.TrimSpace(content) == "" {
		return "This field may not be blank.", false
	}
	if utf8.RuneCountInString(content) > roadmap.MaxCommentLength {
		return fmt.Sprintf("Ensure this field has no more than %d characters.", roadmap.MaxCommentLength), false
	}
	return "", true
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	return strings.TrimPrefix(header, "Token ")
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeUnauthorized(w http.ResponseWriter) {
	writeJSON(w, 401, map[string]any{"detail": "Authentication credentials were not provided."})
}
