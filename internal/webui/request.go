package webui

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/L1nMay/vulnassess/internal/target"
)

const bodyOverhead = 64 * 1024

const fileField = "targetsFile"

// errTooLarge is a transport-level rejection, answered with 413.
var errTooLarge = errors.New("request body too large")

type assessmentRequest struct {
	Type   string `json:"type" form:"type"`
	IP     string `json:"ip" form:"ip"`
	Subnet string `json:"subnet" form:"subnet"`
	Mask   string `json:"mask" form:"mask"`
}

type deviceTypesRequest struct {
	DeviceTypes []string `json:"deviceTypes"`
}

func tooLarge(err error) bool {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return true
	}
	// multipart wraps some read errors without %w
	return err != nil && strings.Contains(err.Error(), "request body too large")
}

// readDescriptor accepts JSON, urlencoded and multipart bodies with the same
// field names. Only multipart bodies can carry the targets file.
func (s *Server) readDescriptor(c *gin.Context) (target.Descriptor, error) {
	var req assessmentRequest
	var d target.Descriptor

	if err := c.ShouldBind(&req); err != nil && !errors.Is(err, io.EOF) {
		if tooLarge(err) {
			return d, errTooLarge
		}
		if c.ContentType() == binding.MIMEJSON {
			return d, &target.ValidationError{Message: "Malformed JSON body"}
		}
		return d, &target.ValidationError{Message: "Malformed form body"}
	}

	kind, err := target.ParseKind(req.Type)
	if err != nil {
		return d, err
	}
	d = target.Descriptor{Kind: kind, IP: req.IP, Subnet: req.Subnet, Mask: req.Mask}

	if kind == target.KindFile && c.Request.MultipartForm != nil {
		name, data, err := s.readUpload(c)
		if err != nil {
			return d, err
		}
		d.FileName = name
		d.File = data
	}
	return d, nil
}

// readUpload returns a nil slice when no file was sent.
func (s *Server) readUpload(c *gin.Context) (string, []byte, error) {
	fh, err := c.FormFile(fileField)
	if errors.Is(err, http.ErrMissingFile) {
		return "", nil, nil
	}
	if err != nil {
		return "", nil, fmt.Errorf("read upload: %w", err)
	}
	if fh.Size > s.cfg.MaxUploadBytes {
		return "", nil, errTooLarge
	}

	f, err := fh.Open()
	if err != nil {
		return "", nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, s.cfg.MaxUploadBytes+1))
	if err != nil {
		return "", nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		return "", nil, errTooLarge
	}
	if data == nil {
		data = []byte{}
	}
	return fh.Filename, data, nil
}

func readDeviceTypes(c *gin.Context) ([]string, error) {
	var req deviceTypesRequest
	err := c.ShouldBindJSON(&req)
	var typeErr *json.UnmarshalTypeError
	switch {
	case err == nil, errors.Is(err, io.EOF), errors.As(err, &typeErr):
		// a non-array deviceTypes is treated like a missing one
		return req.DeviceTypes, nil
	case tooLarge(err):
		return nil, errTooLarge
	default:
		return nil, &target.ValidationError{Message: "Malformed JSON body"}
	}
}
