package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// indexPage is the minimal upload shell. All real work happens in the API;
// the page just posts the file and lets the browser save the attachment.
const indexPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>slidetext - PPTX to Text</title>
</head>
<body>
<h1>PPTX to Text Converter</h1>
<p>Upload a .pptx file (max 50MB). The extracted text is returned as a plain-text download.</p>
<form action="/api/v1/convert/download" method="post" enctype="multipart/form-data">
<input type="file" name="file" accept=".pptx" required>
<button type="submit">Extract Text</button>
</form>
</body>
</html>
`

// IndexHandler serves the upload page.
type IndexHandler struct{}

// NewIndexHandler creates a new IndexHandler.
func NewIndexHandler() *IndexHandler {
	return &IndexHandler{}
}

// Index handles GET /
func (h *IndexHandler) Index(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(indexPage))
}
