package sell

import (
	"net/http"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
)

const sessionCookie = "sell_session"

// Store keeps per-operator sell sessions in memory, bounded by an LRU so
// abandoned carts age out instead of accumulating. Carts are deliberately
// unpersisted: navigating away without generating an invoice loses them.
type Store struct {
	sessions *lru.Cache[string, *Session]
}

func NewStore(capacity int) (*Store, error) {
	c, err := lru.New[string, *Session](capacity)
	if err != nil {
		return nil, err
	}
	return &Store{sessions: c}, nil
}

// Get returns the session for the request's cookie, creating both the
// session and the cookie when absent.
func (st *Store) Get(w http.ResponseWriter, r *http.Request) *Session {
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		if sess, ok := st.sessions.Get(c.Value); ok {
			return sess
		}
		// evicted or restarted; fall through and reissue under the same id
		sess := NewSession()
		st.sessions.Add(c.Value, sess)
		return sess
	}
	id := uuid.NewString()
	sess := NewSession()
	st.sessions.Add(id, sess)
	http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: id, Path: "/", HttpOnly: true})
	return sess
}

// Drop forgets the request's session, if any.
func (st *Store) Drop(r *http.Request) {
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		st.sessions.Remove(c.Value)
	}
}

// Len reports the number of live sessions.
func (st *Store) Len() int { return st.sessions.Len() }
