package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ThatsRight-ItsTJ/convec-api/pixel"
	"github.com/ThatsRight-ItsTJ/convec-api/util"
	"github.com/ThatsRight-ItsTJ/convec-api/vector"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer() *Server {
	return New(Config{})
}

// pngBytes encodes a buffer as PNG.
func pngBytes(t *testing.T, buf *pixel.Buffer) []byte {
	t.Helper()
	var out bytes.Buffer
	require.NoError(t, util.EncodePNG(&out, buf.ToImage()))
	return out.Bytes()
}

// whiteRect returns a white buffer with a black rectangle, the standard
// vectorization fixture.
func whiteRect(t *testing.T) *pixel.Buffer {
	t.Helper()
	b := pixel.NewBuffer(10, 8)
	b.Fill(pixel.RGB{R: 255, G: 255, B: 255})
	for y := 2; y < 6; y++ {
		for x := 2; x < 7; x++ {
			b.SetRGBA(x, y, 0, 0, 0, 255)
		}
	}
	return b
}

type filePart struct {
	field string
	name  string
	data  []byte
}

func multipartRequest(t *testing.T, path string, fields map[string]string, files ...filePart) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for _, f := range files {
		part, err := w.CreateFormFile(f.field, f.name)
		require.NoError(t, err)
		_, err = part.Write(f.data)
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestHealthz(t *testing.T) {
	s := newTestServer()
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestRemoveBG(t *testing.T) {
	s := newTestServer()
	white := pixel.NewBuffer(4, 4)
	white.Fill(pixel.RGB{R: 255, G: 255, B: 255})

	req := multipartRequest(t, "/api/removebg",
		map[string]string{"method": "color", "targetColor": "#ffffff", "tolerance": "10"},
		filePart{field: "image", name: "in.png", data: pngBytes(t, white)},
	)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))

	img, err := util.DecodeImage(rec.Body)
	require.NoError(t, err)
	out := pixel.FromImage(img)
	for y := 0; y < out.Height; y++ {
		for x := 0; x < out.Width; x++ {
			assert.Equal(t, uint8(0), out.AlphaAt(x, y))
		}
	}
}

func TestRemoveBGUnknownMethod(t *testing.T) {
	s := newTestServer()
	white := pixel.NewBuffer(2, 2)
	white.Fill(pixel.RGB{R: 255, G: 255, B: 255})

	req := multipartRequest(t, "/api/removebg",
		map[string]string{"method": "sorcery"},
		filePart{field: "image", name: "in.png", data: pngBytes(t, white)},
	)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRemoveBGNoInput(t *testing.T) {
	s := newTestServer()
	req := multipartRequest(t, "/api/removebg", map[string]string{"method": "color"})
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestVectorizePaths(t *testing.T) {
	s := newTestServer()

	req := multipartRequest(t, "/api/vectorize",
		map[string]string{"format": "paths", "optcurve": "false"},
		filePart{field: "image", name: "in.png", data: pngBytes(t, whiteRect(t))},
	)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result vector.PathResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 1, result.Contours)
	assert.Equal(t, 10.0, result.Width)
	assert.Equal(t, 8.0, result.Height)
	assert.Contains(t, result.Paths, "M 2 2 L ")
}

func TestVectorizeSVGCached(t *testing.T) {
	s := newTestServer()
	png := pngBytes(t, whiteRect(t))

	send := func() *httptest.ResponseRecorder {
		req := multipartRequest(t, "/api/vectorize", nil,
			filePart{field: "image", name: "in.png", data: png})
		rec := httptest.NewRecorder()
		s.Router().ServeHTTP(rec, req)
		return rec
	}

	first := send()
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "image/svg+xml", first.Header().Get("Content-Type"))
	assert.Contains(t, first.Body.String(), "<svg")

	second := send()
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, 1, s.svg.Len(), "second call must hit the cache")
}

func TestConvertPipeline(t *testing.T) {
	s := newTestServer()
	// Red square on white: removal punches out the white, vectorization
	// then traces the remaining opaque square.
	b := pixel.NewBuffer(10, 10)
	b.Fill(pixel.RGB{R: 255, G: 255, B: 255})
	for y := 3; y < 7; y++ {
		for x := 3; x < 7; x++ {
			b.SetRGBA(x, y, 180, 0, 0, 255)
		}
	}

	req := multipartRequest(t, "/api/convert",
		map[string]string{
			"method":      "color",
			"targetColor": "#ffffff",
			"tolerance":   "10",
			"format":      "paths",
			"optcurve":    "false",
			"threshold":   "200",
		},
		filePart{field: "image", name: "in.png", data: pngBytes(t, b)},
	)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result vector.PathResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 1, result.Contours)
	assert.Contains(t, result.Paths, "M 3 3 L ")
}

func TestRemoveBGBatch(t *testing.T) {
	s := newTestServer()
	white := pixel.NewBuffer(3, 3)
	white.Fill(pixel.RGB{R: 255, G: 255, B: 255})

	req := multipartRequest(t, "/api/removebg/batch",
		map[string]string{"method": "color", "targetColor": "#ffffff"},
		filePart{field: "images", name: "a.png", data: pngBytes(t, white)},
		filePart{field: "images", name: "b.png", data: []byte("not a png")},
		filePart{field: "images", name: "c.png", data: pngBytes(t, white)},
	)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Results []batchItem `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 3)

	assert.True(t, resp.Results[0].OK)
	assert.NotEmpty(t, resp.Results[0].Image)
	assert.False(t, resp.Results[1].OK)
	assert.NotEmpty(t, resp.Results[1].Error)
	assert.True(t, resp.Results[2].OK)
}

func TestTextEndpoint(t *testing.T) {
	s := newTestServer()

	req := multipartRequest(t, "/api/text",
		map[string]string{"text": "hello", "size": "1", "color": "#000000"})
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))

	img, err := util.DecodeImage(rec.Body)
	require.NoError(t, err)
	assert.Greater(t, img.Bounds().Dx(), 0)
}

func TestTextMeasureEndpoint(t *testing.T) {
	s := newTestServer()
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/text/measure?text=hello", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Width  int `json:"width"`
		Height int `json:"height"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 35, resp.Width)
	assert.Greater(t, resp.Height, 0)

	rec = httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/text/measure", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
