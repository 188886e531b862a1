package receipt

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"time"
)

// RE2's \s is ASCII only. \v and \p{Zs} add the vertical tab and the
// Unicode space separators such as U+00A0.
var (
	retailerPattern    = regexp.MustCompile(`^[\w\s\v\p{Zs}\-&]+$`)
	descriptionPattern = regexp.MustCompile(`^[\w\s\v\p{Zs}\-]+$`)
	amountPattern      = regexp.MustCompile(`^\d+\.\d{2}$`)
	datePattern        = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timePattern        = regexp.MustCompile(`^(?:[01]\d|2[0-3]):[0-5]\d$`)
	idPattern          = regexp.MustCompile(`^\S+$`)
)

// Issue codes reported in validation failures
const (
	CodeInvalidType   = "invalid_type"
	CodeInvalidString = "invalid_string"
	CodeInvalidDate   = "invalid_date"
	CodeTooSmall      = "too_small"
)

// Issue describes one field that failed validation
type Issue struct {
	Code    string `json:"code"`
	Path    []any  `json:"path"`
	Message string `json:"message"`
}

// ValidationError is returned when a request does not describe a valid receipt
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	switch len(e.Issues) {
	case 0:
		return "invalid receipt"
	case 1:
		return fmt.Sprintf("invalid receipt: %s", e.Issues[0].Message)
	}
	return fmt.Sprintf("invalid receipt: %s (and %d more)", e.Issues[0].Message, len(e.Issues)-1)
}

// ErrTrailingData is returned when a request body holds more than one JSON value
var ErrTrailingData = errors.New("unexpected data after JSON object")

// itemRequest is the wire form of an item. Pointers distinguish missing fields from empty ones.
type itemRequest struct {
	ShortDescription *string
	Price            *string
}

// receiptRequest is the wire form of a receipt submission
type receiptRequest struct {
	Retailer     *string
	PurchaseDate *string
	PurchaseTime *string
	Items        []itemRequest
	Total        *string
}

// decodeReceiptRequest reads exactly one JSON object from body.
// Keys must match the wire names exactly; any other key is ignored.
// Fields of the wrong JSON type come back as a *ValidationError with
// the full path, including the item index.
func decodeReceiptRequest(body io.Reader) (*receiptRequest, error) {
	dec := json.NewDecoder(body)

	var fields map[string]json.RawMessage
	if err := dec.Decode(&fields); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, &ValidationError{Issues: []Issue{typeIssue("object", jsonKindName(typeErr.Value))}}
		}
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		if err == nil {
			err = ErrTrailingData
		}
		return nil, err
	}
	if fields == nil {
		return nil, &ValidationError{Issues: []Issue{typeIssue("object", "null")}}
	}

	var issues []Issue
	str := func(raw map[string]json.RawMessage, key string, path ...any) *string {
		msg, ok := raw[key]
		if !ok {
			return nil
		}
		var s *string
		if err := json.Unmarshal(msg, &s); err != nil {
			issues = append(issues, typeIssue("string", jsonKind(msg), path...))
			return nil
		}
		return s
	}

	req := &receiptRequest{
		Retailer:     str(fields, "retailer", "retailer"),
		PurchaseDate: str(fields, "purchaseDate", "purchaseDate"),
		PurchaseTime: str(fields, "purchaseTime", "purchaseTime"),
		Total:        str(fields, "total", "total"),
	}

	if msg, ok := fields["items"]; ok {
		var items []json.RawMessage
		if err := json.Unmarshal(msg, &items); err != nil {
			issues = append(issues, typeIssue("array", jsonKind(msg), "items"))
		} else if items != nil {
			req.Items = make([]itemRequest, len(items))
			for i, itemMsg := range items {
				var itemFields map[string]json.RawMessage
				if err := json.Unmarshal(itemMsg, &itemFields); err != nil {
					issues = append(issues, typeIssue("object", jsonKind(itemMsg), "items", i))
					continue
				}
				req.Items[i] = itemRequest{
					ShortDescription: str(itemFields, "shortDescription", "items", i, "shortDescription"),
					Price:            str(itemFields, "price", "items", i, "price"),
				}
			}
		}
	}

	if len(issues) > 0 {
		return nil, &ValidationError{Issues: issues}
	}
	return req, nil
}

func typeIssue(expected, received string, path ...any) Issue {
	if path == nil {
		path = []any{}
	}
	return Issue{
		Code:    CodeInvalidType,
		Path:    path,
		Message: fmt.Sprintf("Expected %s, received %s", expected, received),
	}
}

// jsonKindName maps the decoder's type names onto the ones jsonKind reports
func jsonKindName(value string) string {
	if value == "bool" {
		return "boolean"
	}
	return value
}

// jsonKind names the type of a raw JSON value
func jsonKind(msg json.RawMessage) string {
	var v any
	if err := json.Unmarshal(msg, &v); err != nil {
		return "unknown"
	}
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	}
	return "object"
}

// toReceipt validates the request and converts it to a Receipt
func (req *receiptRequest) toReceipt() (Receipt, error) {
	var issues []Issue

	check := func(value *string, pattern *regexp.Regexp, path ...any) string {
		if value == nil {
			issues = append(issues, Issue{Code: CodeInvalidType, Path: path, Message: "Required"})
			return ""
		}
		if !pattern.MatchString(*value) {
			issues = append(issues, Issue{Code: CodeInvalidString, Path: path, Message: "Invalid"})
		}
		return *value
	}

	r := Receipt{
		Retailer:     check(req.Retailer, retailerPattern, "retailer"),
		PurchaseDate: check(req.PurchaseDate, datePattern, "purchaseDate"),
		PurchaseTime: check(req.PurchaseTime, timePattern, "purchaseTime"),
		Total:        check(req.Total, amountPattern, "total"),
	}

	if req.PurchaseDate != nil && datePattern.MatchString(*req.PurchaseDate) {
		if _, err := time.Parse(time.DateOnly, *req.PurchaseDate); err != nil {
			issues = append(issues, Issue{Code: CodeInvalidDate, Path: []any{"purchaseDate"}, Message: "Invalid date"})
		}
	}

	switch {
	case req.Items == nil:
		issues = append(issues, Issue{Code: CodeInvalidType, Path: []any{"items"}, Message: "Required"})
	case len(req.Items) == 0:
		issues = append(issues, Issue{Code: CodeTooSmall, Path: []any{"items"}, Message: "Array must contain at least 1 element(s)"})
	}

	r.Items = make([]Item, 0, len(req.Items))
	for i, item := range req.Items {
		r.Items = append(r.Items, Item{
			ShortDescription: check(item.ShortDescription, descriptionPattern, "items", i, "shortDescription"),
			Price:            check(item.Price, amountPattern, "items", i, "price"),
		})
	}

	if len(issues) > 0 {
		return Receipt{}, &ValidationError{Issues: issues}
	}
	return r, nil
}

// validateID checks the shape of a receipt ID taken from a URL
func validateID(id string) *ValidationError {
	if !idPattern.MatchString(id) {
		return &ValidationError{Issues: []Issue{
			{Code: CodeInvalidString, Path: []any{"id"}, Message: "Invalid"},
		}}
	}
	return nil
}
