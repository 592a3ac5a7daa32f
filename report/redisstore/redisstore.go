/*
Package redisstore provides a cache for reports backed by a redis DB, so
that reports on datasets that have not changed are not recalculated.
*/
package redisstore

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gopkg.in/redis.v5"
)

/*
EncodeDecoder is an interface for objects
that allow encoding reports into slices of
bytes and decoding them back to reports.
*/
type EncodeDecoder interface {

	//Encode receives a report and returns a slice of
	//bytes with the report encoded or an error if the
	//encoding could not be performed for some reason.
	Encode(interface{}) ([]byte, error)

	//Decode receives a slice of bytes and a pointer
	//to a report and decodes the slice of bytes into
	//it, returning an error if the decoding could
	//not be performed for some reason.
	Decode([]byte, interface{}) error
}

type jsonEncodeDecoder struct{}

/*
Store is a cache of reports on a redis DB. Reports are stored under a key
made of the store prefix and a key given by the caller, and expire after
the TTL of the store.
*/
type Store struct {
	rc     *redis.Client
	prefix string
	ttl    time.Duration
	encdec EncodeDecoder
}

/*
New builds a Store backed by the given redis client that keeps reports
under keys with the given prefix during the given TTL (0 for no expiration),
encoding them with the given EncodeDecoder.
*/
func New(rc *redis.Client, prefix string, ttl time.Duration, encdec EncodeDecoder) *Store {
	return &Store{rc, prefix, ttl, encdec}
}

/*
NewJSONEncodeDecoder returns an EncodeDecoder that marshals and unmarshals
reports as JSON.
*/
func NewJSONEncodeDecoder() EncodeDecoder {
	return jsonEncodeDecoder{}
}

/*
Dial takes a redis server address and returns a client to it or an error
if the server does not respond.
*/
func Dial(addr string) (*redis.Client, error) {
	rc := redis.NewClient(&redis.Options{Addr: addr})
	if err := rc.Ping().Err(); err != nil {
		rc.Close()
		return nil, fmt.Errorf("connecting to redis at %s: %v", addr, err)
	}
	return rc, nil
}

/*
Key takes a list of strings identifying a report (such as the description
of its input, the column and the kind of report) and returns a key for it.
*/
func Key(parts ...string) string {
	h := sha1.Sum([]byte(strings.Join(parts, "\x00")))
	return hex.EncodeToString(h[:])
}

/*
Get takes a context, a key and a pointer to a report and decodes the report
stored under the key into it. It returns false if there is no report
for the key and an error if it cannot be retrieved or decoded.
*/
func (s *Store) Get(ctx context.Context, key string, report interface{}) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	data, err := s.rc.Get(s.keyFor(key)).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("retrieving report %q: %v", key, err)
	}
	err = s.encdec.Decode(data, report)
	if err != nil {
		return false, fmt.Errorf("retrieving report %q: decoding %q: %v", key, data, err)
	}
	return true, nil
}

/*
Store takes a context, a key and a report and stores the report under the
key, returning an error if it cannot be encoded or stored.
*/
func (s *Store) Store(ctx context.Context, key string, report interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := s.encdec.Encode(report)
	if err != nil {
		return fmt.Errorf("storing report %q: encoding report: %v", key, err)
	}
	_, err = s.rc.Set(s.keyFor(key), data, s.ttl).Result()
	if err != nil {
		return fmt.Errorf("storing report %q in redis: %v", key, err)
	}
	return nil
}

/*
Delete takes a context and a key and removes the report stored under the key
if there is one.
*/
func (s *Store) Delete(ctx context.Context, key string) error {
	_, err := s.rc.Del(s.keyFor(key)).Result()
	if err != nil {
		return fmt.Errorf("deleting report %q from redis: %v", key, err)
	}
	return nil
}

func (s *Store) keyFor(key string) string {
	return fmt.Sprintf("%s:%s", s.prefix, key)
}

func (jsonEncodeDecoder) Encode(report interface{}) ([]byte, error) {
	return json.Marshal(report)
}

func (jsonEncodeDecoder) Decode(data []byte, report interface{}) error {
	return json.Unmarshal(data, report)
}
