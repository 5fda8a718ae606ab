package models

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/nivschuman/ElectionResults/internal/crypto/hash"
)

type EventKind uint8

const (
	EventSubmitted EventKind = iota + 1
	EventSigned
	EventFinalized
)

func (kind EventKind) String() string {
	switch kind {
	case EventSubmitted:
		return "submitted"
	case EventSigned:
		return "signed"
	case EventFinalized:
		return "finalized"
	default:
		return fmt.Sprintf("kind(%d)", uint8(kind))
	}
}

type AuditEvent struct {
	Sequence  uint64    //position in the global log, starts at 1
	Id        string    //uuid
	Kind      EventKind //kind of transition
	StationId string    //station the transition touched
	ActorId   string    //principal that caused the transition
	Role      Role      //role of the signature, only set for signed events
	Timestamp int64     //unix nano timestamp of the transition
	Payload   []byte    //json of SubmittedPayload or SignedPayload, empty for finalized events
	PrevHash  []byte    //hash of previous event, 32 zero bytes for the first event
	Hash      []byte    //hash of AsBytes, 32 bytes
}

type SubmittedPayload struct {
	ElectionId    string   `json:"election_id"`
	ResultHash    string   `json:"result_hash"`
	ResultDataUrl string   `json:"result_data_url"`
	TotalVotes    uint64   `json:"total_votes"`
	CandidateIds  []string `json:"candidate_ids"`
	Votes         []uint64 `json:"votes"`
}

type SignedPayload struct {
	Affiliation string `json:"affiliation"`
}

var GenesisHash = make([]byte, 32)

func (event *AuditEvent) AsBytes() []byte {
	buf := new(bytes.Buffer)

	binary.Write(buf, binary.BigEndian, event.Sequence)
	binary.Write(buf, binary.BigEndian, uint8(event.Kind))
	binary.Write(buf, binary.BigEndian, uint8(event.Role))
	binary.Write(buf, binary.BigEndian, event.Timestamp)
	writeLengthPrefixed(buf, []byte(event.Id))
	writeLengthPrefixed(buf, []byte(event.StationId))
	writeLengthPrefixed(buf, []byte(event.ActorId))
	writeLengthPrefixed(buf, event.Payload)
	buf.Write(event.PrevHash)

	return buf.Bytes()
}

func (event *AuditEvent) GetHash() []byte {
	return hash.HashBytes(event.AsBytes())
}

func (event *AuditEvent) SetHash() {
	event.Hash = event.GetHash()
}

func (event *AuditEvent) SubmittedPayload() (*SubmittedPayload, error) {
	if event.Kind != EventSubmitted {
		return nil, fmt.Errorf("event %d is %s, not submitted", event.Sequence, event.Kind)
	}

	payload := &SubmittedPayload{}
	if err := json.Unmarshal(event.Payload, payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func (event *AuditEvent) SignedPayload() (*SignedPayload, error) {
	if event.Kind != EventSigned {
		return nil, fmt.Errorf("event %d is %s, not signed", event.Sequence, event.Kind)
	}

	payload := &SignedPayload{}
	if err := json.Unmarshal(event.Payload, payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func writeLengthPrefixed(buf *bytes.Buffer, b []byte) {
	binary.Write(buf, binary.BigEndian, uint32(len(b)))
	buf.Write(b)
}
