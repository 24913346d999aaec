package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
)

type DomainErrorsSuite struct {
	suite.Suite
}

func TestDomainErrorsSuite(t *testing.T) {
	suite.Run(t, new(DomainErrorsSuite))
}

func (s *DomainErrorsSuite) TestNew_CarriesCodeAndMessage() {
	err := New(CodeNotFound, "registration not found")
	s.Equal("registration not found", err.Error())
	s.True(HasCode(err, CodeNotFound))
	s.False(HasCode(err, CodeInternal))
}

func (s *DomainErrorsSuite) TestError_MessageFallsBackToCode() {
	err := &Error{Code: CodeInternal}
	s.Equal("internal_error", err.Error())
}

func (s *DomainErrorsSuite) TestWrap_PreservesOriginalCode() {
	inner := New(CodeNotFound, "missing")
	wrapped := Wrap(inner, CodeInternal, "update failed")

	s.True(HasCode(wrapped, CodeNotFound), "wrapping must not overwrite an existing domain code")
	s.Equal("update failed", wrapped.Error())
	s.ErrorIs(wrapped, inner)
}

func (s *DomainErrorsSuite) TestWrap_PlainErrorGetsNewCode() {
	inner := fmt.Errorf("dial tcp: connection refused")
	wrapped := Wrap(inner, CodeInternal, "store unreachable")

	s.True(HasCode(wrapped, CodeInternal))
	s.ErrorIs(wrapped, inner)
}

func (s *DomainErrorsSuite) TestIs_MatchesByCode() {
	err := New(CodeValidation, "bad input")
	s.True(errors.Is(err, &Error{Code: CodeValidation}))
	s.False(errors.Is(err, &Error{Code: CodeConflict}))
}

func (s *DomainErrorsSuite) TestNewValidation_CarriesFields() {
	err := NewValidation("invalid registration", map[string]string{
		"email": "please enter a valid email address",
	})
	s.True(HasCode(err, CodeValidation))
	s.Equal("please enter a valid email address", FieldsOf(err)["email"])
}

func (s *DomainErrorsSuite) TestFieldsOf_NilForPlainErrors() {
	s.Nil(FieldsOf(errors.New("boom")))
	s.Nil(FieldsOf(New(CodeInternal, "x")))
}
