package services

import (
	"context"
	"encoding/base64"
	"io"

	openai "github.com/sashabaranov/go-openai"
)

// Voice is one entry of the fixed text-to-speech voice catalog.
type Voice struct {
	VoiceID     string `json:"voice_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

const defaultVoice = "nova"

var voiceCatalog = []Voice{
	{VoiceID: "nova", Name: "Nova", Description: "Energetic, upbeat - great for health guidance"},
	{VoiceID: "alloy", Name: "Alloy", Description: "Neutral, balanced tone"},
	{VoiceID: "echo", Name: "Echo", Description: "Smooth, calm - soothing for patients"},
	{VoiceID: "fable", Name: "Fable", Description: "Expressive, storytelling style"},
	{VoiceID: "onyx", Name: "Onyx", Description: "Deep, authoritative"},
	{VoiceID: "shimmer", Name: "Shimmer", Description: "Bright, cheerful"},
}

// SpeechClient is the upstream surface for the voice endpoints, faked in
// tests the same way CompletionClient is.
type SpeechClient interface {
	Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error)
	Synthesize(ctx context.Context, text, voice string) ([]byte, error)
}

// OpenAISpeech implements SpeechClient with Whisper and the OpenAI TTS API.
type OpenAISpeech struct {
	client *openai.Client
}

func NewOpenAISpeech(apiKey string) *OpenAISpeech {
	return &OpenAISpeech{client: openai.NewClient(apiKey)}
}

func (o *OpenAISpeech) Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error) {
	resp, err := o.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: filename,
		Reader:   audio,
		Language: "en",
	})
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}

func (o *OpenAISpeech) Synthesize(ctx context.Context, text, voice string) ([]byte, error) {
	resp, err := o.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.TTSModel1,
		Input:          text,
		Voice:          openai.SpeechVoice(voice),
		ResponseFormat: openai.SpeechResponseFormatMp3,
	})
	if err != nil {
		return nil, err
	}
	defer resp.Close()
	return io.ReadAll(resp)
}

// VoiceService converts between chat text and audio.
type VoiceService struct {
	speech SpeechClient
}

func NewVoiceService(speech SpeechClient) *VoiceService {
	return &VoiceService{speech: speech}
}

func (s *VoiceService) Voices() []Voice {
	return voiceCatalog
}

// SpeechToText transcribes an uploaded audio file.
func (s *VoiceService) SpeechToText(ctx context.Context, filename string, audio io.Reader) (string, error) {
	return s.speech.Transcribe(ctx, filename, audio)
}

// TextToSpeech synthesizes text into base64-encoded mp3 audio.
func (s *VoiceService) TextToSpeech(ctx context.Context, text, voice string) (string, error) {
	if text == "" {
		return "", invalid("text is required")
	}
	if voice == "" {
		voice = defaultVoice
	}
	audio, err := s.speech.Synthesize(ctx, text, voice)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(audio), nil
}
