package announce

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/almm82030-star/Bilingual-Smart-Queue-System/internal/models"
)

// Announcer voices a called ticket. Implementations must swallow their
// own side effects: the queue state never depends on the outcome.
type Announcer interface {
	Announce(ctx context.Context, displayID string, dept models.Department) error
}

// AudioSink receives the synthesized announcement audio, raw 16-bit PCM
// at 24 kHz mono.
type AudioSink interface {
	BroadcastAudio(departmentID, displayID string, pcm []byte)
}

const (
	defaultEndpoint = "https://generativelanguage.googleapis.com"
	defaultModel    = "gemini-2.5-flash-preview-tts"

	// PCMSampleRate is the sample rate of the audio the TTS model
	// returns.
	PCMSampleRate = 24000
)

var errMissingAPIKey = errors.New("tts api key not configured")

type Config struct {
	APIKey   string
	Model    string
	Endpoint string
	Timeout  time.Duration
}

// New builds the TTS announcer. Without an API key announcements
// degrade to log lines.
func New(cfg Config, sink AudioSink) Announcer {
	if cfg.APIKey == "" {
		log.Printf("tts api key missing, announcements will only be logged")
		return logAnnouncer{}
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = defaultEndpoint
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ttsAnnouncer{
		apiKey:   cfg.APIKey,
		model:    cfg.Model,
		endpoint: cfg.Endpoint,
		client:   &http.Client{Timeout: timeout},
		sink:     sink,
	}
}

type logAnnouncer struct{}

func (logAnnouncer) Announce(ctx context.Context, displayID string, dept models.Department) error {
	log.Printf("announce ticket=%s room=%s", displayID, dept.RoomNameEn)
	return nil
}

// ttsAnnouncer calls the Gemini TTS endpoint and pushes the decoded
// audio to the sink.
type ttsAnnouncer struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
	sink     AudioSink
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mimeType,omitempty"`
	Data     string `json:"data"`
}

type generationConfig struct {
	ResponseModalities []string     `json:"responseModalities"`
	SpeechConfig       speechConfig `json:"speechConfig"`
}

type speechConfig struct {
	MultiSpeakerVoiceConfig multiSpeakerVoiceConfig `json:"multiSpeakerVoiceConfig"`
}

type multiSpeakerVoiceConfig struct {
	SpeakerVoiceConfigs []speakerVoiceConfig `json:"speakerVoiceConfigs"`
}

type speakerVoiceConfig struct {
	Speaker     string      `json:"speaker"`
	VoiceConfig voiceConfig `json:"voiceConfig"`
}

type voiceConfig struct {
	PrebuiltVoiceConfig prebuiltVoiceConfig `json:"prebuiltVoiceConfig"`
}

type prebuiltVoiceConfig struct {
	VoiceName string `json:"voiceName"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func (a *ttsAnnouncer) Announce(ctx context.Context, displayID string, dept models.Department) error {
	if a.apiKey == "" {
		return errMissingAPIKey
	}

	prompt := fmt.Sprintf(`TTS the following announcement:
      Arabic: التذكرة رقم %s، برجاء التوجه إلى %s.
      English: Ticket number %s, please proceed to %s.`,
		displayID, dept.RoomNameAr, displayID, dept.RoomNameEn)

	reqBody := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			ResponseModalities: []string{"AUDIO"},
			SpeechConfig: speechConfig{
				MultiSpeakerVoiceConfig: multiSpeakerVoiceConfig{
					SpeakerVoiceConfigs: []speakerVoiceConfig{
						{Speaker: "Arabic", VoiceConfig: voiceConfig{PrebuiltVoiceConfig: prebuiltVoiceConfig{VoiceName: "Kore"}}},
						{Speaker: "English", VoiceConfig: voiceConfig{PrebuiltVoiceConfig: prebuiltVoiceConfig{VoiceName: "Zephyr"}}},
					},
				},
			},
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("encode tts request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", a.endpoint, a.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build tts request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", a.apiKey)

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("tts request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("tts request rejected: status %d", resp.StatusCode)
	}

	var decoded generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return fmt.Errorf("decode tts response: %w", err)
	}

	audio := extractAudio(decoded)
	if audio == "" {
		return errors.New("tts response contained no audio")
	}
	pcm, err := base64.StdEncoding.DecodeString(audio)
	if err != nil {
		return fmt.Errorf("decode tts audio: %w", err)
	}

	if a.sink != nil {
		a.sink.BroadcastAudio(dept.ID, displayID, pcm)
	}
	return nil
}

func extractAudio(resp generateResponse) string {
	for _, candidate := range resp.Candidates {
		for _, p := range candidate.Content.Parts {
			if p.InlineData != nil && p.InlineData.Data != "" {
				return p.InlineData.Data
			}
		}
	}
	return ""
}
