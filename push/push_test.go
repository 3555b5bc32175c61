package push

import (
	"context"
	"crypto/elliptic"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/pkg/errors"
	"github.com/sideshow/apns2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/govindrajkumar/easy-lease-sub000/model"
)

func subscriptionToken(t *testing.T, endpoint string) string {
	_, x, y, err := elliptic.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	auth := make([]byte, 16)
	_, err = rand.Read(auth)
	require.NoError(t, err)

	data, err := json.Marshal(&webpush.Subscription{
		Endpoint: endpoint,
		Keys: webpush.Keys{
			P256dh: base64.RawURLEncoding.EncodeToString(elliptic.Marshal(elliptic.P256(), x, y)),
			Auth:   base64.RawURLEncoding.EncodeToString(auth),
		},
	})
	require.NoError(t, err)
	return string(data)
}

func TestWebPushSender(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "aes128gcm", r.Header.Get("Content-Encoding"))
		assert.True(t, strings.HasPrefix(r.Header.Get("Authorization"), "vapid "))
		io.Copy(io.Discard, r.Body)
		if r.URL.Path == "/gone" {
			w.WriteHeader(http.StatusGone)
			return
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	private, public, err := webpush.GenerateVAPIDKeys()
	require.NoError(t, err)

	sender := NewWebPushSender(&Config{
		Concurrency: 2,
		WebPush: WebPushConfig{
			VapidPublicKey:  public,
			VapidPrivateKey: private,
			Subscriber:      "ops@example.com",
			TTL:             30,
		},
	})
	sender.HTTPClient = srv.Client()

	resp, err := sender.SendMulticast(context.Background(), &model.MulticastMessage{
		Tokens: []string{
			subscriptionToken(t, srv.URL+"/ok1"),
			subscriptionToken(t, srv.URL+"/ok2"),
			subscriptionToken(t, srv.URL+"/gone"),
			"not json",
		},
		Title: "New Message",
		Body:  "hello",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.SuccessCount)
	assert.Equal(t, 2, resp.FailureCount)
	assert.Equal(t, int32(3), atomic.LoadInt32(&hits))
}

func TestAPNsSender(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "com.easylease.app", r.Header.Get("apns-topic"))
		body, _ := io.ReadAll(r.Body)
		assert.Contains(t, string(body), `"title":"Rent Payment Updated"`)
		if strings.HasSuffix(r.URL.Path, "/bad") {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"reason":"BadDeviceToken"}`))
			return
		}
		w.Header().Set("apns-id", "abc")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	sender := &APNsSender{
		Client: &apns2.Client{HTTPClient: srv.Client(), Host: srv.URL},
		Topic:  "com.easylease.app",
	}
	resp, err := sender.SendMulticast(context.Background(), &model.MulticastMessage{
		Tokens: []string{"good", "bad"},
		Title:  "Rent Payment Updated",
		Body:   "A rent payment record has changed.",
	})
	require.NoError(t, err)
	assert.Equal(t, &model.BatchResponse{SuccessCount: 1, FailureCount: 1}, resp)
}

type recordingSender struct {
	tokens []string
}

func (r *recordingSender) SendMulticast(_ context.Context, msg *model.MulticastMessage) (*model.BatchResponse, error) {
	r.tokens = append(r.tokens, msg.Tokens...)
	return &model.BatchResponse{SuccessCount: len(msg.Tokens)}, nil
}

func TestRouterSplitsTokens(t *testing.T) {
	web := &recordingSender{}
	apple := &recordingSender{}
	router := &Router{WebPush: web, APNs: apple}

	resp, err := router.SendMulticast(context.Background(), &model.MulticastMessage{
		Tokens: []string{`{"endpoint":"https://push.example"}`, "a1b2c3", " {\"endpoint\":\"x\"}"},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.SuccessCount)
	assert.Len(t, web.tokens, 2)
	assert.Equal(t, []string{"a1b2c3"}, apple.tokens)
}

func TestRouterMissingProvider(t *testing.T) {
	router := &Router{WebPush: &recordingSender{}}
	resp, err := router.SendMulticast(context.Background(), &model.MulticastMessage{Tokens: []string{"a1b2c3"}})
	assert.True(t, errors.Is(err, ErrAllFailed))
	assert.Equal(t, 1, resp.FailureCount)

	resp, err = router.SendMulticast(context.Background(), &model.MulticastMessage{
		Tokens: []string{"a1b2c3", `{"endpoint":"https://push.example"}`},
	})
	require.NoError(t, err)
	assert.Equal(t, &model.BatchResponse{SuccessCount: 1, FailureCount: 1}, resp)
}

type failingSender struct {
	calls int32
}

func (f *failingSender) send(context.Context, string, string, string) error {
	atomic.AddInt32(&f.calls, 1)
	return errors.New("provider down")
}

func TestFanOutEveryTokenFails(t *testing.T) {
	s := &failingSender{}
	resp, err := fanOut(context.Background(), "apns", s, 2, &model.MulticastMessage{Tokens: []string{"a", "b"}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAllFailed))
	assert.Contains(t, err.Error(), "provider down")
	assert.Equal(t, &model.BatchResponse{FailureCount: 2}, resp)
	assert.Equal(t, int32(2), atomic.LoadInt32(&s.calls))
}

func TestAPNsSenderProviderDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"reason":"InvalidProviderToken"}`))
	}))
	defer srv.Close()

	sender := &APNsSender{
		Client: &apns2.Client{HTTPClient: srv.Client(), Host: srv.URL},
		Topic:  "com.easylease.app",
	}
	resp, err := sender.SendMulticast(context.Background(), &model.MulticastMessage{
		Tokens: []string{"t1", "t2"},
		Title:  "Rent Payment Updated",
	})
	assert.True(t, errors.Is(err, ErrAllFailed))
	assert.Equal(t, 2, resp.FailureCount)
}

func TestNew(t *testing.T) {
	s, err := New(&Config{Type: "log"})
	require.NoError(t, err)
	resp, err := s.SendMulticast(context.Background(), &model.MulticastMessage{Tokens: []string{"a", "b"}})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.SuccessCount)

	_, err = New(&Config{Type: "apns", APNs: APNsConfig{CertFile: "/nonexistent.p12"}})
	assert.Error(t, err)

	_, err = New(&Config{Type: "pigeon"})
	assert.Error(t, err)
}
