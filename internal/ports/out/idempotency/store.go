package idempotency

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// Key is the Idempotency-Key header value sent with a create.
type Key string

// Fingerprint addresses one stored record. A create under a key uses two:
// the claim (empty BodyHash), which remembers the first body hash sent with
// the key, and the response slot (BodyHash set), which holds the 201 to replay.
type Fingerprint struct {
	Key      Key
	Method   string
	Route    string
	BodyHash string
}

// ForCreate returns the claim and response fingerprints of a POST to route.
func ForCreate(key Key, route, bodyHash string) (claim, response Fingerprint) {
	claim = Fingerprint{Key: key, Method: http.MethodPost, Route: route}
	response = claim
	response.BodyHash = bodyHash
	return claim, response
}

const claimContentType = "text/plain"

type Record struct {
	StatusCode  int
	ContentType string
	Body        []byte
	CreatedAt   time.Time
}

// Claim builds the record stored under a claim fingerprint.
func Claim(bodyHash string, at time.Time) Record {
	return Record{ContentType: claimContentType, Body: []byte(bodyHash), CreatedAt: at.UTC()}
}

// ClaimedHash is the body hash held by a claim record.
func (r Record) ClaimedHash() string { return string(r.Body) }

// Replayable reports whether r is a stored create response.
func (r Record) Replayable() bool {
	return r.StatusCode == http.StatusCreated && strings.HasPrefix(r.ContentType, "application/json")
}

// Store persists claims and create responses. Put overwrites.
type Store interface {
	Get(ctx context.Context, fp Fingerprint) (Record, bool, error)
	Put(ctx context.Context, fp Fingerprint, rec Record) error
}
