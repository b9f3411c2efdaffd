// Package rules holds the field-level validation and normalisation rules
// shared by every write path. A rule never mutates state: it returns the
// normalised value or a validation error naming the offending field.
package rules

import (
	"fmt"
	"strings"
	"time"

	"hospital-management-api/internal/domain/entity"
	"hospital-management-api/pkg/apperror"
)

const (
	minUsernameLength       = 4
	minPersonNameLength     = 2
	minDepartmentNameLength = 3
	minSpecialtyLength      = 3
	minClinicalTextLength   = 5
	minDoctorContactLength  = 5
	minContactDigits        = 10
)

// Text trims raw and requires at least min characters.
func Text(field, raw string, min int) (string, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return "", apperror.Validation(field, "is required")
	}
	if len([]rune(v)) < min {
		return "", apperror.Validation(field, fmt.Sprintf("must be at least %d characters", min))
	}
	return v, nil
}

func Username(raw string) (string, error) {
	return Text("username", raw, minUsernameLength)
}

func PersonName(raw string) (string, error) {
	return Text("name", raw, minPersonNameLength)
}

func Specialization(raw string) (string, error) {
	return Text("specialization", raw, 1)
}

func DepartmentName(raw string) (string, error) {
	return Text("name", raw, minDepartmentNameLength)
}

func Specialty(raw string) (string, error) {
	return Text("specialty", raw, minSpecialtyLength)
}

func Diagnosis(raw string) (string, error) {
	return Text("diagnosis", raw, minClinicalTextLength)
}

func Treatment(raw string) (string, error) {
	return Text("treatment", raw, minClinicalTextLength)
}

func DoctorContact(raw string) (string, error) {
	return Text("contact", raw, minDoctorContactLength)
}

// ContactNumber accepts digits with an optional leading '+', at least ten digits.
func ContactNumber(raw string) (string, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return "", apperror.Validation("contact_number", "is required")
	}
	digits := strings.TrimPrefix(v, "+")
	if digits == "" {
		return "", apperror.Validation("contact_number", "must contain digits")
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return "", apperror.Validation("contact_number", "must contain only digits and an optional leading +")
		}
	}
	if len(digits) < minContactDigits {
		return "", apperror.Validation("contact_number", fmt.Sprintf("must contain at least %d digits", minContactDigits))
	}
	return v, nil
}

func Gender(raw string) (string, error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	for _, g := range entity.Genders {
		if v == g {
			return v, nil
		}
	}
	return "", apperror.Validation("gender", "must be one of male, female, other")
}

func Role(raw string) (entity.Role, error) {
	r := entity.Role(strings.ToLower(strings.TrimSpace(raw)))
	if !r.Valid() {
		return "", apperror.Validation("role", "must be one of admin, doctor, patient, department_manager")
	}
	return r, nil
}

func PatientType(raw string) (entity.PatientType, error) {
	t := entity.PatientType(strings.ToLower(strings.TrimSpace(raw)))
	if !t.Valid() {
		return "", apperror.Validation("type", "must be one of patient, inpatient, outpatient")
	}
	return t, nil
}

// AppointmentStatus matches case-insensitively and returns the canonical spelling.
func AppointmentStatus(raw string) (entity.AppointmentStatus, error) {
	v := strings.TrimSpace(raw)
	for _, s := range entity.AppointmentStatuses {
		if strings.EqualFold(v, string(s)) {
			return s, nil
		}
	}
	return "", apperror.Validation("status", "must be one of Scheduled, Completed, Canceled")
}

func PositiveInt(field string, n int) error {
	if n <= 0 {
		return apperror.Validation(field, "must be a positive integer")
	}
	return nil
}

var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// DateTime parses an ISO-8601 timestamp and returns it as naive UTC: an offset,
// if present, is dropped and the wall clock is kept.
func DateTime(field, raw string) (time.Time, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return time.Time{}, apperror.Validation(field, "is required")
	}
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return NaiveUTC(t), nil
		}
	}
	return time.Time{}, apperror.Validation(field, "must be an ISO-8601 date time")
}

// Date parses a calendar date, accepting any DateTime layout and truncating to the day.
func Date(field, raw string) (time.Time, error) {
	t, err := DateTime(field, raw)
	if err != nil {
		return time.Time{}, apperror.Validation(field, "must be a date in YYYY-MM-DD format")
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// NaiveUTC keeps the wall clock of t and labels it UTC.
func NaiveUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// NotInPast rejects t strictly before now.
func NotInPast(field string, t, now time.Time) error {
	if t.Before(now) {
		return apperror.Validation(field, "cannot be in the past")
	}
	return nil
}

// NotInFuture rejects t strictly after now.
func NotInFuture(field string, t, now time.Time) error {
	if t.After(now) {
		return apperror.Validation(field, "cannot be in the future")
	}
	return nil
}
