package fintrack_test

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"
)

// fakeRecordServer is an in-memory stand-in for the remote record
// store, implementing just enough of the records protocol for the SDK:
// password auth, user creation and per-collection CRUD with -created
// ordering.
type fakeRecordServer struct {
	mu    sync.Mutex
	seq   int
	base  time.Time
	users map[string]map[string]any // keyed by email
	colls map[string][]map[string]any

	// requests counts calls per method+path for cache assertions.
	requests map[string]int

	// listHook, when set, runs for each list call after the response
	// snapshot has been taken. Blocking in it delays delivery of a
	// snapshot that is already fixed, which is how tests model a slow
	// response racing a mutation.
	listCalls int
	listHook  func(call int)

	srv *httptest.Server
}

func newFakeRecordServer(t *testing.T) *fakeRecordServer {
	t.Helper()
	f := &fakeRecordServer{
		base:     time.Date(2023, 8, 1, 10, 0, 0, 0, time.UTC),
		users:    make(map[string]map[string]any),
		colls:    make(map[string][]map[string]any),
		requests: make(map[string]int),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/collections/users/records/auth-with-password", f.handleAuth)
	mux.HandleFunc("POST /api/collections/users/records", f.handleCreateUser)
	mux.HandleFunc("GET /api/collections/{name}/records", f.handleList)
	mux.HandleFunc("POST /api/collections/{name}/records", f.handleCreate)
	mux.HandleFunc("PATCH /api/collections/{name}/records/{id}", f.handleUpdate)
	mux.HandleFunc("DELETE /api/collections/{name}/records/{id}", f.handleDelete)

	f.srv = httptest.NewServer(mux)
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeRecordServer) URL() string { return f.srv.URL }

// addUser seeds an account and returns its id.
func (f *fakeRecordServer) addUser(email, password, username string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	id := fmt.Sprintf("usr%04d", f.seq)
	f.users[email] = map[string]any{
		"id": id, "email": email, "username": username, "password": password,
	}
	return id
}

func (f *fakeRecordServer) count(method, path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[method+" "+path]
}

func (f *fakeRecordServer) setListHook(hook func(call int)) {
	f.mu.Lock()
	f.listHook = hook
	f.mu.Unlock()
}

func (f *fakeRecordServer) listCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls
}

func (f *fakeRecordServer) track(r *http.Request) {
	f.mu.Lock()
	f.requests[r.Method+" "+r.URL.Path]++
	f.mu.Unlock()
}

func (f *fakeRecordServer) nextCreated() string {
	f.seq++
	return f.base.Add(time.Duration(f.seq) * time.Second).Format("2006-01-02 15:04:05.000Z")
}

func writeFailure(w http.ResponseWriter, status int, message string, data map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	body := map[string]any{"code": status, "message": message}
	if data != nil {
		body["data"] = data
	}
	_ = json.NewEncoder(w).Encode(body)
}

// testJWT builds an unsigned token with the given subject and expiry.
// The SDK only decodes the payload segment; the signature is opaque.
func testJWT(id string, exp time.Time) string {
	enc := func(v any) string {
		b, _ := json.Marshal(v)
		return base64.RawURLEncoding.EncodeToString(b)
	}
	header := enc(map[string]string{"alg": "HS256", "typ": "JWT"})
	payload := enc(map[string]any{"id": id, "collectionId": "users", "exp": exp.Unix()})
	return header + "." + payload + ".sig"
}

func (f *fakeRecordServer) handleAuth(w http.ResponseWriter, r *http.Request) {
	f.track(r)
	var req struct {
		Identity string `json:"identity"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Something went wrong while processing your request.", nil)
		return
	}
	f.mu.Lock()
	user, ok := f.users[req.Identity]
	f.mu.Unlock()
	if !ok || user["password"] != req.Password {
		writeFailure(w, http.StatusBadRequest, "Failed to authenticate.", nil)
		return
	}
	record := map[string]any{
		"id": user["id"], "email": user["email"], "username": user["username"],
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"token":  testJWT(user["id"].(string), time.Now().Add(time.Hour)),
		"record": record,
	})
}

func (f *fakeRecordServer) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	f.track(r)
	var req struct {
		Email           string `json:"email"`
		Password        string `json:"password"`
		PasswordConfirm string `json:"passwordConfirm"`
		Username        string `json:"username"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Something went wrong while processing your request.", nil)
		return
	}
	f.mu.Lock()
	_, exists := f.users[req.Email]
	f.mu.Unlock()
	if exists {
		writeFailure(w, http.StatusBadRequest, "Failed to create record.", map[string]any{
			"email": map[string]any{"code": "validation_not_unique", "message": "Value must be unique."},
		})
		return
	}
	if len(req.Password) < 8 {
		writeFailure(w, http.StatusBadRequest, "Failed to create record.", map[string]any{
			"password": map[string]any{"code": "validation_length_out_of_range", "message": "Must be at least 8 characters."},
		})
		return
	}
	id := f.addUser(req.Email, req.Password, req.Username)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"id": id, "email": req.Email, "username": req.Username,
	})
}

func (f *fakeRecordServer) authorized(r *http.Request) bool {
	return r.Header.Get("Authorization") != ""
}

func (f *fakeRecordServer) handleList(w http.ResponseWriter, r *http.Request) {
	f.track(r)
	if !f.authorized(r) {
		writeFailure(w, http.StatusUnauthorized, "The request requires valid record authorization token to be set.", nil)
		return
	}
	name := r.PathValue("name")

	f.mu.Lock()
	items := append([]map[string]any(nil), f.colls[name]...)
	f.listCalls++
	call, hook := f.listCalls, f.listHook
	f.mu.Unlock()

	if hook != nil {
		hook(call)
	}

	if r.URL.Query().Get("sort") == "-created" {
		sort.SliceStable(items, func(i, j int) bool {
			return items[i]["created"].(string) > items[j]["created"].(string)
		})
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"page": 1, "perPage": 500, "totalItems": len(items), "totalPages": 1, "items": items,
	})
}

func (f *fakeRecordServer) handleCreate(w http.ResponseWriter, r *http.Request) {
	f.track(r)
	if !f.authorized(r) {
		writeFailure(w, http.StatusUnauthorized, "The request requires valid record authorization token to be set.", nil)
		return
	}
	name := r.PathValue("name")
	var fields map[string]any
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeFailure(w, http.StatusBadRequest, "Something went wrong while processing your request.", nil)
		return
	}
	f.mu.Lock()
	f.seq++
	fields["id"] = fmt.Sprintf("rec%04d", f.seq)
	fields["created"] = f.nextCreated()
	f.colls[name] = append(f.colls[name], fields)
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(fields)
}

func (f *fakeRecordServer) handleUpdate(w http.ResponseWriter, r *http.Request) {
	f.track(r)
	if !f.authorized(r) {
		writeFailure(w, http.StatusUnauthorized, "The request requires valid record authorization token to be set.", nil)
		return
	}
	name, id := r.PathValue("name"), r.PathValue("id")
	var fields map[string]any
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeFailure(w, http.StatusBadRequest, "Something went wrong while processing your request.", nil)
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, rec := range f.colls[name] {
		if rec["id"] == id {
			for k, v := range fields {
				if k == "id" || k == "created" {
					continue
				}
				rec[k] = v
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(rec)
			return
		}
	}
	writeFailure(w, http.StatusNotFound, "The requested resource wasn't found.", nil)
}

func (f *fakeRecordServer) handleDelete(w http.ResponseWriter, r *http.Request) {
	f.track(r)
	if !f.authorized(r) {
		writeFailure(w, http.StatusUnauthorized, "The request requires valid record authorization token to be set.", nil)
		return
	}
	name, id := r.PathValue("name"), r.PathValue("id")
	f.mu.Lock()
	defer f.mu.Unlock()
	recs := f.colls[name]
	for i, rec := range recs {
		if rec["id"] == id {
			f.colls[name] = append(recs[:i], recs[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeFailure(w, http.StatusNotFound, "The requested resource wasn't found.", nil)
}
