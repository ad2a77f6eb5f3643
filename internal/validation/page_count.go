package validation

import (
	"bytes"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// CountPDFPages counts the pages of an in-memory PDF
func CountPDFPages(pdf []byte) (int, error) {
	if len(pdf) == 0 {
		return 0, &Error{Message: "empty PDF"}
	}

	conf := model.NewDefaultConfiguration()
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(pdf), conf)
	if err != nil {
		return 0, &Error{Message: "failed to read PDF", Cause: err}
	}
	return ctx.PageCount, nil
}
