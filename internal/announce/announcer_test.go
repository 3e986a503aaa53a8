package announce

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/almm82030-star/Bilingual-Smart-Queue-System/internal/models"
)

var testDept = models.Department{
	ID:         "vehicles",
	NameAr:     "قسم المركبات",
	NameEn:     "Vehicles Section",
	Prefix:     "V",
	RoomNameAr: "مكتب المركبات",
	RoomNameEn: "Vehicles Office",
}

type captureSink struct {
	mu           sync.Mutex
	departmentID string
	displayID    string
	pcm          []byte
}

func (c *captureSink) BroadcastAudio(departmentID, displayID string, pcm []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.departmentID = departmentID
	c.displayID = displayID
	c.pcm = pcm
}

func ttsResponse(audio []byte) string {
	encoded := base64.StdEncoding.EncodeToString(audio)
	return `{"candidates":[{"content":{"parts":[{"inlineData":{"mimeType":"audio/pcm","data":"` + encoded + `"}}]}}]}`
}

func TestAnnounceDeliversAudioToSink(t *testing.T) {
	pcm := []byte{0x01, 0x02, 0x03, 0x04}
	var gotPath, gotKey string
	var gotBody []byte

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, ttsResponse(pcm))
	}))
	defer server.Close()

	sink := &captureSink{}
	announcer := New(Config{APIKey: "test-key", Endpoint: server.URL}, sink)

	if err := announcer.Announce(context.Background(), "V-007", testDept); err != nil {
		t.Fatalf("announce: %v", err)
	}

	if gotPath != "/v1beta/models/"+defaultModel+":generateContent" {
		t.Fatalf("path=%s", gotPath)
	}
	if gotKey != "test-key" {
		t.Fatalf("api key header=%s", gotKey)
	}

	var req generateRequest
	if err := json.Unmarshal(gotBody, &req); err != nil {
		t.Fatalf("decode request: %v", err)
	}
	prompt := req.Contents[0].Parts[0].Text
	if !strings.Contains(prompt, "V-007") || !strings.Contains(prompt, testDept.RoomNameAr) || !strings.Contains(prompt, testDept.RoomNameEn) {
		t.Fatalf("prompt missing fields: %q", prompt)
	}
	if got := req.GenerationConfig.ResponseModalities; len(got) != 1 || got[0] != "AUDIO" {
		t.Fatalf("response modalities: %v", got)
	}
	if voices := req.GenerationConfig.SpeechConfig.MultiSpeakerVoiceConfig.SpeakerVoiceConfigs; len(voices) != 2 {
		t.Fatalf("speaker voices: %+v", voices)
	}

	if sink.departmentID != "vehicles" || sink.displayID != "V-007" {
		t.Fatalf("sink routing: dept=%s display=%s", sink.departmentID, sink.displayID)
	}
	if string(sink.pcm) != string(pcm) {
		t.Fatalf("sink pcm=%v, want %v", sink.pcm, pcm)
	}
}

func TestAnnounceRemoteError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	announcer := New(Config{APIKey: "test-key", Endpoint: server.URL}, &captureSink{})

	if err := announcer.Announce(context.Background(), "V-007", testDept); err == nil {
		t.Fatalf("expected error for remote failure")
	}
}

func TestAnnounceEmptyAudio(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"candidates":[]}`)
	}))
	defer server.Close()

	announcer := New(Config{APIKey: "test-key", Endpoint: server.URL}, &captureSink{})

	if err := announcer.Announce(context.Background(), "V-007", testDept); err == nil {
		t.Fatalf("expected error for missing audio")
	}
}

func TestMissingAPIKeyDegradesToLog(t *testing.T) {
	announcer := New(Config{}, &captureSink{})

	if _, ok := announcer.(logAnnouncer); !ok {
		t.Fatalf("expected log announcer without api key, got %T", announcer)
	}
	if err := announcer.Announce(context.Background(), "V-007", testDept); err != nil {
		t.Fatalf("log announcer errored: %v", err)
	}
}
