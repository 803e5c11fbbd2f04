package proto

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"
)

// ErrBadMessage is wrapped by every decoding failure.
var ErrBadMessage = errors.New("bad message")

const (
	fieldUser      = "user"
	fieldY1        = "y1"
	fieldY2        = "y2"
	fieldR1        = "r1"
	fieldR2        = "r2"
	fieldC         = "c"
	fieldS         = "s"
	fieldAuthID    = "auth_id"
	fieldStatus    = "status"
	fieldSessionID = "session_id"
)

// ChallengeStatus tells whether a challenge was issued.
type ChallengeStatus string

const (
	ChallengeStatusIssued        ChallengeStatus = "ISSUED"
	ChallengeStatusNotRegistered ChallengeStatus = "NOT_REGISTERED"
)

// VerifyStatus is the outcome of a proof check.
type VerifyStatus string

const (
	VerifyStatusAccepted         VerifyStatus = "ACCEPTED"
	VerifyStatusWrongCredentials VerifyStatus = "WRONG_CREDENTIALS"
)

type RegisterRequest struct {
	User string
	Y1   string
	Y2   string
}

func (m *RegisterRequest) GetUser() string {
	if m == nil {
		return ""
	}
	return m.User
}

func (m *RegisterRequest) GetY1() string {
	if m == nil {
		return ""
	}
	return m.Y1
}

func (m *RegisterRequest) GetY2() string {
	if m == nil {
		return ""
	}
	return m.Y2
}

func (m *RegisterRequest) ToStruct() *structpb.Struct {
	return newStruct(map[string]string{
		fieldUser: m.GetUser(),
		fieldY1:   m.GetY1(),
		fieldY2:   m.GetY2(),
	})
}

func (m *RegisterRequest) FromStruct(s *structpb.Struct) error {
	d := decoder{s: s}
	m.User = d.str(fieldUser)
	m.Y1 = d.str(fieldY1)
	m.Y2 = d.str(fieldY2)
	return d.err
}

// RegisterResponse is an empty acknowledgement.
type RegisterResponse struct{}

func (m *RegisterResponse) ToStruct() *structpb.Struct {
	return newStruct(nil)
}

func (m *RegisterResponse) FromStruct(s *structpb.Struct) error {
	return nil
}

type AuthenticationChallengeRequest struct {
	User string
	R1   string
	R2   string
}

func (m *AuthenticationChallengeRequest) GetUser() string {
	if m == nil {
		return ""
	}
	return m.User
}

func (m *AuthenticationChallengeRequest) GetR1() string {
	if m == nil {
		return ""
	}
	return m.R1
}

func (m *AuthenticationChallengeRequest) GetR2() string {
	if m == nil {
		return ""
	}
	return m.R2
}

func (m *AuthenticationChallengeRequest) ToStruct() *structpb.Struct {
	return newStruct(map[string]string{
		fieldUser: m.GetUser(),
		fieldR1:   m.GetR1(),
		fieldR2:   m.GetR2(),
	})
}

func (m *AuthenticationChallengeRequest) FromStruct(s *structpb.Struct) error {
	d := decoder{s: s}
	m.User = d.str(fieldUser)
	m.R1 = d.str(fieldR1)
	m.R2 = d.str(fieldR2)
	return d.err
}

// AuthenticationChallengeResponse carries the challenge c and the auth id
// to answer with. AuthId and C are empty unless Status is ISSUED.
type AuthenticationChallengeResponse struct {
	Status ChallengeStatus
	AuthId string
	C      string
}

func (m *AuthenticationChallengeResponse) GetStatus() ChallengeStatus {
	if m == nil {
		return ""
	}
	return m.Status
}

func (m *AuthenticationChallengeResponse) GetAuthId() string {
	if m == nil {
		return ""
	}
	return m.AuthId
}

func (m *AuthenticationChallengeResponse) GetC() string {
	if m == nil {
		return ""
	}
	return m.C
}

func (m *AuthenticationChallengeResponse) ToStruct() *structpb.Struct {
	return newStruct(map[string]string{
		fieldStatus: string(m.GetStatus()),
		fieldAuthID: m.GetAuthId(),
		fieldC:      m.GetC(),
	})
}

func (m *AuthenticationChallengeResponse) FromStruct(s *structpb.Struct) error {
	d := decoder{s: s}
	m.Status = ChallengeStatus(d.str(fieldStatus))
	m.AuthId = d.str(fieldAuthID)
	m.C = d.str(fieldC)
	if d.err != nil {
		return d.err
	}
	switch m.Status {
	case ChallengeStatusIssued, ChallengeStatusNotRegistered:
		return nil
	default:
		return fmt.Errorf("%w: unknown challenge status %q", ErrBadMessage, m.Status)
	}
}

type AuthenticationAnswerRequest struct {
	AuthId string
	S      string
}

func (m *AuthenticationAnswerRequest) GetAuthId() string {
	if m == nil {
		return ""
	}
	return m.AuthId
}

func (m *AuthenticationAnswerRequest) GetS() string {
	if m == nil {
		return ""
	}
	return m.S
}

func (m *AuthenticationAnswerRequest) ToStruct() *structpb.Struct {
	return newStruct(map[string]string{
		fieldAuthID: m.GetAuthId(),
		fieldS:      m.GetS(),
	})
}

func (m *AuthenticationAnswerRequest) FromStruct(s *structpb.Struct) error {
	d := decoder{s: s}
	m.AuthId = d.str(fieldAuthID)
	m.S = d.str(fieldS)
	return d.err
}

// AuthenticationAnswerResponse carries the session id on ACCEPTED.
type AuthenticationAnswerResponse struct {
	Status    VerifyStatus
	SessionId string
}

func (m *AuthenticationAnswerResponse) GetStatus() VerifyStatus {
	if m == nil {
		return ""
	}
	return m.Status
}

func (m *AuthenticationAnswerResponse) GetSessionId() string {
	if m == nil {
		return ""
	}
	return m.SessionId
}

func (m *AuthenticationAnswerResponse) ToStruct() *structpb.Struct {
	return newStruct(map[string]string{
		fieldStatus:    string(m.GetStatus()),
		fieldSessionID: m.GetSessionId(),
	})
}

func (m *AuthenticationAnswerResponse) FromStruct(s *structpb.Struct) error {
	d := decoder{s: s}
	m.Status = VerifyStatus(d.str(fieldStatus))
	m.SessionId = d.str(fieldSessionID)
	if d.err != nil {
		return d.err
	}
	switch m.Status {
	case VerifyStatusAccepted, VerifyStatusWrongCredentials:
		return nil
	default:
		return fmt.Errorf("%w: unknown verify status %q", ErrBadMessage, m.Status)
	}
}

func newStruct(fields map[string]string) *structpb.Struct {
	s := &structpb.Struct{Fields: make(map[string]*structpb.Value, len(fields))}
	for k, v := range fields {
		s.Fields[k] = structpb.NewStringValue(v)
	}
	return s
}

// decoder reads string fields and keeps the first error. Missing fields
// decode as "".
type decoder struct {
	s   *structpb.Struct
	err error
}

func (d *decoder) str(name string) string {
	if d.err != nil {
		return ""
	}
	v, ok := d.s.GetFields()[name]
	if !ok || v == nil {
		return ""
	}
	sv, ok := v.GetKind().(*structpb.Value_StringValue)
	if !ok {
		d.err = fmt.Errorf("%w: field %q is not a string", ErrBadMessage, name)
		return ""
	}
	return sv.StringValue
}
