package elevenlabs_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/claudeloba/talk-over-api/internal/clients/elevenlabs"
	"github.com/claudeloba/talk-over-api/internal/pipeline"
)

type fakeUploader struct {
	objectName string
	data       []byte
	url        string
}

func (f *fakeUploader) Upload(_ context.Context, objectName string, data []byte) (string, error) {
	f.objectName = objectName
	f.data = data
	return f.url, nil
}

func TestNarrateRejectsBlankScript(t *testing.T) {
	client := elevenlabs.NewClient("http://unused", "key", "voice", &fakeUploader{})

	_, err := client.Narrate(context.Background(), "   ", "")
	assert.ErrorIs(t, err, pipeline.ErrEmptyInput)
}

func TestNarrateSynthesizesAndStoresAudio(t *testing.T) {
	uploader := &fakeUploader{url: "https://storage.example/audio/tts_1.mp3"}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/text-to-speech/custom-voice", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("xi-api-key"))
		assert.Equal(t, "audio/mpeg", r.Header.Get("Accept"))
		w.Write([]byte("mp3-bytes"))
	}))
	defer server.Close()

	client := elevenlabs.NewClient(server.URL, "secret", "default-voice", uploader)

	url, err := client.Narrate(context.Background(), "A script about volcanoes.", "custom-voice")
	require.NoError(t, err)
	assert.Equal(t, uploader.url, url)
	assert.Equal(t, []byte("mp3-bytes"), uploader.data)
	assert.Contains(t, uploader.objectName, "audio/tts_")
}

func TestNarrateUsesDefaultVoice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/text-to-speech/default-voice", r.URL.Path)
		w.Write([]byte("mp3"))
	}))
	defer server.Close()

	client := elevenlabs.NewClient(server.URL, "secret", "default-voice", &fakeUploader{url: "u"})

	_, err := client.Narrate(context.Background(), "A script.", "")
	require.NoError(t, err)
}

func TestNarrateMapsClientErrorsToRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid api key", http.StatusUnauthorized)
	}))
	defer server.Close()

	client := elevenlabs.NewClient(server.URL, "bad-key", "voice", &fakeUploader{})

	_, err := client.Narrate(context.Background(), "A script.", "")
	assert.ErrorIs(t, err, pipeline.ErrUpstreamRejected)
}

func TestNarrateMapsServerErrorsToUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := elevenlabs.NewClient(server.URL, "key", "voice", &fakeUploader{})

	_, err := client.Narrate(context.Background(), "A script.", "")
	assert.ErrorIs(t, err, pipeline.ErrUpstreamUnavailable)
}

func TestNarrateMapsTransportFailureToUnavailable(t *testing.T) {
	client := elevenlabs.NewClient("http://127.0.0.1:1", "key", "voice", &fakeUploader{})

	_, err := client.Narrate(context.Background(), "A script.", "")
	assert.ErrorIs(t, err, pipeline.ErrUpstreamUnavailable)
}
