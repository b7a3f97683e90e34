package server

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ThatsRight-ItsTJ/convec-api/cache"
	"github.com/ThatsRight-ItsTJ/convec-api/pixel"
	"github.com/ThatsRight-ItsTJ/convec-api/removal"
	"github.com/ThatsRight-ItsTJ/convec-api/render"
	"github.com/ThatsRight-ItsTJ/convec-api/util"
	"github.com/ThatsRight-ItsTJ/convec-api/vector"
	"github.com/ThatsRight-ItsTJ/convec-api/worker"
)

var errNoInput = errors.New("no image supplied: upload a file field \"image\" or pass \"url\"")

// loadBuffer reads the request image from the multipart file field "image"
// or the "url" parameter and decodes it into a pixel buffer. When "maxSize"
// is set the buffer is downscaled so its longest side fits.
func (s *Server) loadBuffer(c *gin.Context) (*pixel.Buffer, error) {
	var buf *pixel.Buffer

	if file, err := c.FormFile("image"); err == nil {
		b, err := decodeUpload(file)
		if err != nil {
			return nil, err
		}
		buf = b
	} else if url := param(c, "url"); url != "" {
		img, err := util.DownloadImage(url)
		if err != nil {
			return nil, err
		}
		buf = pixel.FromImage(img)
	} else {
		return nil, errNoInput
	}

	maxSize, err := intParam(c, "maxSize", 0)
	if err != nil {
		return nil, err
	}
	if maxSize > 0 {
		buf = buf.ResizeWithinMax(maxSize)
	}
	return buf, nil
}

func decodeUpload(file *multipart.FileHeader) (*pixel.Buffer, error) {
	f, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload %s: %w", file.Filename, err)
	}
	defer func() {
		_ = f.Close()
	}()

	img, err := util.DecodeImage(f)
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", file.Filename, err)
	}
	return pixel.FromImage(img), nil
}

// abortErr maps an error to a status code: option and input errors are 400,
// undecodable images are 422, everything else 500.
func (s *Server) abortErr(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, removal.ErrUnknownMethod),
		errors.Is(err, removal.ErrBadOption),
		errors.Is(err, vector.ErrBadOption),
		errors.Is(err, render.ErrBadOption),
		errors.Is(err, pixel.ErrInvalidBuffer),
		errors.Is(err, errBadParam),
		errors.Is(err, errNoInput):
		status = http.StatusBadRequest
	default:
		status = http.StatusUnprocessableEntity
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

func (s *Server) handleRemoveBG(c *gin.Context) {
	defer util.Trace("removebg")()

	opts, err := removalOptions(c)
	if err != nil {
		s.abortErr(c, err)
		return
	}
	buf, err := s.loadBuffer(c)
	if err != nil {
		s.abortErr(c, err)
		return
	}

	out, err := removal.Apply(buf, opts)
	if err != nil {
		s.abortErr(c, err)
		return
	}

	// Optional compositing over a replacement background.
	if bg := param(c, "background"); bg != "" {
		rgb, err := pixel.ParseHex(bg)
		if err != nil {
			s.abortErr(c, fmt.Errorf("%w: %v", removal.ErrBadOption, err))
			return
		}
		out = removal.ReplaceColor(out, rgb)
	}

	s.respondPNG(c, out)
}

type batchItem struct {
	Index int    `json:"index"`
	OK    bool   `json:"ok"`
	Image string `json:"image,omitempty"`
	Error string `json:"error,omitempty"`
}

func (s *Server) handleRemoveBGBatch(c *gin.Context) {
	defer util.Trace("removebg batch")()

	opts, err := removalOptions(c)
	if err != nil {
		s.abortErr(c, err)
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		s.abortErr(c, err)
		return
	}
	files := form.File["images"]
	if len(files) == 0 {
		s.abortErr(c, errNoInput)
		return
	}

	// Decode failures participate as failed items instead of aborting the
	// batch; each buffer is owned by exactly one worker.
	results := worker.Map(len(files), s.cfg.Parallel, func(i int) batchItem {
		buf, err := decodeUpload(files[i])
		if err != nil {
			return batchItem{Index: i, Error: err.Error()}
		}
		out, err := removal.Apply(buf, opts)
		if err != nil {
			return batchItem{Index: i, Error: err.Error()}
		}

		var png bytes.Buffer
		if err := util.EncodePNG(&png, out.ToImage()); err != nil {
			return batchItem{Index: i, Error: err.Error()}
		}
		return batchItem{
			Index: i,
			OK:    true,
			Image: base64.StdEncoding.EncodeToString(png.Bytes()),
		}
	})

	c.JSON(http.StatusOK, gin.H{"results": results})
}

func (s *Server) handleVectorize(c *gin.Context) {
	defer util.Trace("vectorize")()

	opts, err := vectorOptions(c)
	if err != nil {
		s.abortErr(c, err)
		return
	}
	buf, err := s.loadBuffer(c)
	if err != nil {
		s.abortErr(c, err)
		return
	}

	s.respondVector(c, buf, opts)
}

func (s *Server) handleConvert(c *gin.Context) {
	defer util.Trace("convert")()

	ropts, err := removalOptions(c)
	if err != nil {
		s.abortErr(c, err)
		return
	}
	vopts, err := vectorOptions(c)
	if err != nil {
		s.abortErr(c, err)
		return
	}
	buf, err := s.loadBuffer(c)
	if err != nil {
		s.abortErr(c, err)
		return
	}

	out, err := removal.Apply(buf, ropts)
	if err != nil {
		s.abortErr(c, err)
		return
	}

	crop, err := boolParam(c, "crop", false)
	if err != nil {
		s.abortErr(c, err)
		return
	}
	if crop {
		out = out.CropToForeground(0.5)
	}

	s.respondVector(c, out, vopts)
}

// respondVector emits the vectorization result as a full SVG document, or as
// bare path data when format=paths. SVG documents are memoized on the buffer
// hash and options.
func (s *Server) respondVector(c *gin.Context, buf *pixel.Buffer, opts vector.Options) {
	if param(c, "format") == "paths" {
		result, err := vector.ToPathData(buf, opts)
		if err != nil {
			s.abortErr(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
		return
	}

	key := cacheKey(buf, opts)
	if doc, ok := s.svg.Get(key); ok {
		c.Data(http.StatusOK, "image/svg+xml", []byte(doc))
		return
	}

	doc, err := vector.ToSVG(buf, opts)
	if err != nil {
		s.abortErr(c, err)
		return
	}
	s.svg.Put(key, doc)
	c.Data(http.StatusOK, "image/svg+xml", []byte(doc))
}

func (s *Server) handleText(c *gin.Context) {
	text := param(c, "text")
	if text == "" {
		s.abortErr(c, fmt.Errorf("%w: missing text", render.ErrBadOption))
		return
	}

	opts := render.DefaultOptions()
	var err error
	if opts.Size, err = intParam(c, "size", opts.Size); err != nil {
		s.abortErr(c, err)
		return
	}
	if opts.Foreground, err = colorParam(c, "color", opts.Foreground); err != nil {
		s.abortErr(c, err)
		return
	}
	if bg := param(c, "background"); bg != "" {
		rgb, err := pixel.ParseHex(bg)
		if err != nil {
			s.abortErr(c, fmt.Errorf("%w: %v", render.ErrBadOption, err))
			return
		}
		opts.Background = &rgb
	}

	buf, err := render.Text(text, opts)
	if err != nil {
		s.abortErr(c, err)
		return
	}
	s.respondPNG(c, buf)
}

func (s *Server) handleTextMeasure(c *gin.Context) {
	text := c.Query("text")
	if text == "" {
		s.abortErr(c, fmt.Errorf("%w: missing text", render.ErrBadOption))
		return
	}
	w, h := render.Measure(text)
	c.JSON(http.StatusOK, gin.H{"width": w, "height": h})
}

func (s *Server) respondPNG(c *gin.Context, buf *pixel.Buffer) {
	var out bytes.Buffer
	if err := util.EncodePNG(&out, buf.ToImage()); err != nil {
		s.abortErr(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", out.Bytes())
}

func cacheKey(buf *pixel.Buffer, opts vector.Options) uint64 {
	return cache.Key(buf, fmt.Sprintf("%+v", opts))
}
