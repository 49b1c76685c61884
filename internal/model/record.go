package model

// Format identifies one of the supported log layouts.
type Format string

const (
	FormatLaravel Format = "laravel" // PHP framework application log
	FormatApache  Format = "apache"  // web-server error log
	FormatAccess  Format = "access"  // common/combined access log
)

// Formats lists every supported format in display order.
var Formats = []Format{FormatLaravel, FormatApache, FormatAccess}

// Key names a header field that filters and summaries may inspect.
type Key string

const (
	KeyTimestamp Key = "timestamp"
	KeySeverity  Key = "severity"
	KeyStatus    Key = "status"
	KeyMethod    Key = "method"
)

// Record is a sealed log record. Field reports the value of a header field,
// or false when the record kind has no such field.
type Record interface {
	Format() Format
	Field(k Key) (string, bool)
}

// AppRecord is one entry of a Laravel application log.
type AppRecord struct {
	Timestamp string `json:"timestamp" yaml:"timestamp"`
	Severity  string `json:"severity" yaml:"severity"`
	Message   string `json:"message" yaml:"message"` // may span several lines
}

func (r AppRecord) Format() Format { return FormatLaravel }

func (r AppRecord) Field(k Key) (string, bool) {
	switch k {
	case KeyTimestamp:
		return r.Timestamp, true
	case KeySeverity:
		return r.Severity, true
	}
	return "", false
}

// ErrorRecord is one entry of an Apache error log.
type ErrorRecord struct {
	Timestamp string `json:"timestamp" yaml:"timestamp"`
	Severity  string `json:"severity" yaml:"severity"`
	ProcessID string `json:"processId" yaml:"processId"`
	Message   string `json:"message" yaml:"message"`
}

func (r ErrorRecord) Format() Format { return FormatApache }

func (r ErrorRecord) Field(k Key) (string, bool) {
	switch k {
	case KeyTimestamp:
		return r.Timestamp, true
	case KeySeverity:
		return r.Severity, true
	}
	return "", false
}

// AccessRecord is one request line of an access log.
// Referrer and UserAgent are empty strings when the line carries "".
type AccessRecord struct {
	ClientIP     string `json:"clientIp" yaml:"clientIp"`
	Timestamp    string `json:"timestamp" yaml:"timestamp"`
	HTTPMethod   string `json:"httpMethod" yaml:"httpMethod"`
	RequestURL   string `json:"requestUrl" yaml:"requestUrl"`
	Protocol     string `json:"protocol" yaml:"protocol"`
	StatusCode   string `json:"statusCode" yaml:"statusCode"`
	ResponseSize string `json:"responseSize" yaml:"responseSize"`
	Referrer     string `json:"referrer" yaml:"referrer"`
	UserAgent    string `json:"userAgent" yaml:"userAgent"`
}

func (r AccessRecord) Format() Format { return FormatAccess }

func (r AccessRecord) Field(k Key) (string, bool) {
	switch k {
	case KeyTimestamp:
		return r.Timestamp, true
	case KeyStatus:
		return r.StatusCode, true
	case KeyMethod:
		return r.HTTPMethod, true
	}
	return "", false
}
