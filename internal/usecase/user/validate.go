package user

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	domain "user-directory-service/internal/domain/user"
)

// requestField is the error-map key for failures that concern the
// request as a whole rather than a single field.
const requestField = "request"

var validate = validator.New()

// Normalize trims surrounding whitespace and reports whether anything
// remains. A blank value normalizes to absent. Normalizing an already
// normalized value returns it unchanged.
func Normalize(s string) (string, bool) {
	t := strings.TrimSpace(s)
	return t, t != ""
}

// fieldRule describes the validation policy for one field. The same
// rules serve create and update; only the presence requirement differs.
type fieldRule struct {
	key     string // JSON field name, used as the error-map key
	label   string // display name used in messages
	maxLen  int
	isEmail bool
}

var (
	firstNameRule  = fieldRule{key: "firstName", label: "First name", maxLen: domain.MaxNameLen}
	lastNameRule   = fieldRule{key: "lastName", label: "Last name", maxLen: domain.MaxNameLen}
	emailRule      = fieldRule{key: "email", label: "Email", maxLen: domain.MaxEmailLen, isEmail: true}
	departmentRule = fieldRule{key: "department", label: "Department", maxLen: domain.MaxDepartmentLen}
	titleRule      = fieldRule{key: "title", label: "Title", maxLen: domain.MaxTitleLen}
	phoneRule      = fieldRule{key: "phone", label: "Phone", maxLen: domain.MaxPhoneLen}
)

// checkField applies rule to value and records failures in errs.
// When required, an absent or blank value is an error. When not
// required, absent is skipped and blank is rejected: a patch may omit a
// field but never blank it out.
func checkField(errs map[string][]string, rule fieldRule, value *string, required bool) {
	add := func(msg string) {
		errs[rule.key] = append(errs[rule.key], msg)
	}

	if value == nil {
		if required {
			add(fmt.Sprintf("%s is required.", rule.label))
		}
		return
	}

	v, ok := Normalize(*value)
	if !ok {
		if required {
			add(fmt.Sprintf("%s is required.", rule.label))
		} else {
			add(fmt.Sprintf("%s cannot be empty.", rule.label))
		}
		return
	}

	if utf8.RuneCountInString(v) > rule.maxLen {
		add(fmt.Sprintf("%s must be at most %d characters.", rule.label, rule.maxLen))
	}
	if rule.isEmail && validate.Var(v, "email") != nil {
		add(fmt.Sprintf("%s is not valid.", rule.label))
	}
}

// ValidateCreate checks a full record: the four required fields must
// resolve to non-blank values, the optional ones may be absent but not
// blank. An empty map means the request is acceptable.
func ValidateCreate(req *CreateUserRequest) map[string][]string {
	errs := make(map[string][]string)
	checkField(errs, firstNameRule, req.FirstName, true)
	checkField(errs, lastNameRule, req.LastName, true)
	checkField(errs, emailRule, req.Email, true)
	checkField(errs, departmentRule, req.Department, true)
	checkField(errs, titleRule, req.Title, false)
	checkField(errs, phoneRule, req.Phone, false)
	return errs
}

// ValidateUpdate checks only the fields the patch supplies. A patch
// supplying no field at all is rejected with a request-scoped error.
func ValidateUpdate(req *UpdateUserRequest) map[string][]string {
	errs := make(map[string][]string)
	if req.Empty() {
		errs[requestField] = append(errs[requestField], "At least one field must be provided.")
		return errs
	}
	checkField(errs, firstNameRule, req.FirstName, false)
	checkField(errs, lastNameRule, req.LastName, false)
	checkField(errs, emailRule, req.Email, false)
	checkField(errs, departmentRule, req.Department, false)
	checkField(errs, titleRule, req.Title, false)
	checkField(errs, phoneRule, req.Phone, false)
	return errs
}

// normalized returns the trimmed value of a field that validation has
// already proven present and non-blank.
func normalized(p *string) string {
	v, _ := Normalize(*p)
	return v
}

// normalizedPtr returns a pointer to the trimmed value, or nil when the
// field is absent or blank.
func normalizedPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v, ok := Normalize(*p)
	if !ok {
		return nil
	}
	return &v
}
