package handlers

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	v1 "github.com/kubev2v/docsql/api/v1"
	"github.com/kubev2v/docsql/internal/export"
)

// maxBodyBytes bounds the size of a query document.
const maxBodyBytes = 1 << 20

// ListTables returns the catalog
// (GET /tables)
func (h *Handler) ListTables(c *gin.Context) {
	c.JSON(http.StatusOK, v1.NewTableList(h.querySrv.Tables()))
}

// TranslateTable returns the SQL for a find request
// (POST /tables/{table}/translate)
func (h *Handler) TranslateTable(c *gin.Context, table string) {
	req, ok := bindQueryRequest(c)
	if !ok {
		return
	}

	statement, err := h.querySrv.Translate(req.ToModel(table))
	if err != nil {
		writeError(c, "translate_handler", "failed to translate query", err)
		return
	}

	c.JSON(http.StatusOK, v1.TranslateResponse{Sql: statement})
}

// FindTable translates and runs a find request
// (POST /tables/{table}/find)
func (h *Handler) FindTable(c *gin.Context, table string, params v1.FindTableParams) {
	format := v1.FindTableParamsFormatJson
	if params.Format != nil {
		format = *params.Format
	}
	if format != v1.FindTableParamsFormatJson && format != v1.FindTableParamsFormatXlsx {
		c.JSON(http.StatusBadRequest, v1.Error{Error: "invalid format: " + string(format) + ", must be 'json' or 'xlsx'"})
		return
	}

	req, ok := bindQueryRequest(c)
	if !ok {
		return
	}

	rs, err := h.querySrv.Find(c.Request.Context(), req.ToModel(table))
	if err != nil {
		writeError(c, "find_handler", "failed to run query", err)
		return
	}

	if format == v1.FindTableParamsFormatXlsx {
		var buf bytes.Buffer
		if err := export.WriteXLSX(&buf, rs); err != nil {
			writeError(c, "find_handler", "failed to export results", err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="`+table+`.xlsx"`)
		c.Data(http.StatusOK, export.XLSXContentType, buf.Bytes())
		return
	}

	c.JSON(http.StatusOK, v1.NewFindResponse(rs))
}

func bindQueryRequest(c *gin.Context) (v1.QueryRequest, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, v1.Error{Error: "request body too large"})
			return v1.QueryRequest{}, false
		}
		c.JSON(http.StatusBadRequest, v1.Error{Error: "failed to read request body: " + err.Error()})
		return v1.QueryRequest{}, false
	}

	req, err := v1.ParseQueryRequest(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, v1.Error{Error: err.Error()})
		return v1.QueryRequest{}, false
	}

	return req, true
}
