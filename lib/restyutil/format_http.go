package restyutil

import (
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/go-resty/resty/v2"
)

func renderHeaders(out *strings.Builder, headers http.Header) {
	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		for _, v := range headers[k] {
			fmt.Fprintf(out, "%s: %s\n", k, v)
		}
	}
}

func renderRequestBody(out *strings.Builder, req *http.Request) {
	if req.GetBody == nil {
		return
	}
	body, err := req.GetBody()
	if err != nil {
		fmt.Fprintf(out, "<failed to get request body: %s>\n", err)
		return
	}
	contents, err := io.ReadAll(body)
	if err != nil {
		fmt.Fprintf(out, "<failed to read request body: %s>\n", err)
		return
	}
	out.Write(contents)
	out.WriteString("\n")
}

// formatHttpMessage renders one request/response pair in a plain
// wire-like dump.
func formatHttpMessage(res *resty.Response) string {
	var out strings.Builder

	fmt.Fprintf(&out, ">>> %s %s\n", res.Request.Method, res.Request.URL)
	renderHeaders(&out, res.Request.RawRequest.Header)
	out.WriteString("\n")
	renderRequestBody(&out, res.Request.RawRequest)

	finalUrl := res.Request.URL
	if redirected, err := res.RawResponse.Location(); err == nil {
		finalUrl = redirected.String()
	}

	fmt.Fprintf(&out, "<<< %d %s\n", res.StatusCode(), finalUrl)
	renderHeaders(&out, res.Header())
	out.WriteString("\n")
	out.WriteString(res.String())

	return out.String()
}
