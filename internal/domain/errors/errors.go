package errors

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalid = errors.New("invalid")

// Build failure categories. Every fatal build error matches exactly one of
// these through errors.Is.
var (
	ErrDiscovery        = errors.New("discovery failed")
	ErrParse            = errors.New("malformed metadata")
	ErrRouteCollision   = errors.New("route collision")
	ErrTemplateNotFound = errors.New("template not found")
	ErrWrite            = errors.New("write output failed")
)

type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

type ValidationError struct {
	Items []FieldError
}

func (e ValidationError) Error() string {
	if len(e.Items) == 0 {
		return "validation failed"
	}

	var b strings.Builder
	b.WriteString("validation failed:\n")
	for _, item := range e.Items {
		b.WriteString(" - ")
		b.WriteString(item.Error())
		b.WriteString("\n")
	}
	return b.String()
}

func (e *ValidationError) Add(field, msg string) {
	e.Items = append(e.Items, FieldError{
		Field:   field,
		Message: msg,
	})
}

func (e ValidationError) Is(target error) bool {
	return target == ErrInvalid
}

func (e ValidationError) HasAny() bool {
	return len(e.Items) > 0
}

// ParseError reports a metadata header that could not be decoded.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrParse }

// RouteCollisionError carries both sources that resolved to OutPath.
type RouteCollisionError struct {
	OutPath string
	First   string
	Second  string
}

func (e *RouteCollisionError) Error() string {
	return fmt.Sprintf("route collision on %s: %s and %s", e.OutPath, e.First, e.Second)
}

func (e *RouteCollisionError) Is(target error) bool { return target == ErrRouteCollision }

type TemplateNotFoundError struct {
	Name   string
	Source string
}

func (e *TemplateNotFoundError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("template %s not found", e.Name)
	}
	return fmt.Sprintf("template %s not found (requested by %s)", e.Name, e.Source)
}

func (e *TemplateNotFoundError) Is(target error) bool { return target == ErrTemplateNotFound }
