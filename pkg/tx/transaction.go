package tx

import (
	"time"

	"github.com/google/uuid"
	"github.com/multiformats/go-multihash"
	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/tcfw/didreg/pkg/cryptography"
)

const (
	Version1 uint8 = 1
)

// Op names the registry operation a Tx invokes
type Op string

const (
	OpRegister Op = "register"
	OpVerify   Op = "verify"
	OpView     Op = "view"
	OpCount    Op = "count"
)

var (
	ErrUnknownOp       = errors.New("unknown tx op")
	ErrMissingArg      = errors.New("missing tx argument")
	ErrUnknownVersion  = errors.New("unknown tx version")
	ErrProofMismatched = errors.New("proof address does not match signing key")
)

type Args struct {
	Caller   string `msgpack:"c,omitempty" json:"caller,omitempty"`
	Target   string `msgpack:"t,omitempty" json:"target,omitempty"`
	FullName string `msgpack:"n,omitempty" json:"fullName,omitempty"`
	IDNumber string `msgpack:"i,omitempty" json:"idNumber,omitempty"`
}

// Proof is an authorization proof that the issuer of a Tx controls Address
type Proof struct {
	Address   string               `msgpack:"a" json:"address"`
	KeyType   cryptography.KeyType `msgpack:"k" json:"keyType"`
	PublicKey string               `msgpack:"p" json:"publicKey"`
	Signature []byte               `msgpack:"s" json:"signature"`
}

// Tx is a single registry invocation submitted to the ledger host
type Tx struct {
	Version uint8   `msgpack:"v" json:"version"`
	Ts      int64   `msgpack:"T" json:"ts"`
	Nonce   string  `msgpack:"N" json:"nonce"`
	Op      Op      `msgpack:"o" json:"op"`
	Args    Args    `msgpack:"d" json:"args"`
	Auth    []Proof `msgpack:"s,omitempty" json:"auth,omitempty"`
}

func New(op Op, args Args) *Tx {
	return &Tx{
		Version: Version1,
		Ts:      time.Now().Unix(),
		Nonce:   uuid.NewString(),
		Op:      op,
		Args:    args,
	}
}

func (t *Tx) Marshal() ([]byte, error) {
	b, err := msgpack.Marshal(t)
	if err != nil {
		return nil, errors.Wrap(err, "mashaling tx")
	}

	return b, nil
}

func (t *Tx) Unmarshal(b []byte) error {
	if err := msgpack.Unmarshal(b, t); err != nil {
		return err
	}

	return t.Validate()
}

// Validate checks the op is known and carries the arguments it needs
func (t *Tx) Validate() error {
	if t.Version != Version1 {
		return ErrUnknownVersion
	}

	switch t.Op {
	case OpRegister:
		if t.Args.Caller == "" {
			return errors.Wrap(ErrMissingArg, "caller")
		}
	case OpVerify:
		if t.Args.Caller == "" {
			return errors.Wrap(ErrMissingArg, "caller")
		}
		if t.Args.Target == "" {
			return errors.Wrap(ErrMissingArg, "target")
		}
	case OpView:
		if t.Args.Target == "" {
			return errors.Wrap(ErrMissingArg, "target")
		}
	case OpCount:
	default:
		return errors.Wrapf(ErrUnknownOp, "%q", t.Op)
	}

	return nil
}

// SigningBytes is the encoding of the Tx that proofs sign over. Proofs
// themselves are excluded.
func (t *Tx) SigningBytes() ([]byte, error) {
	c := *t
	c.Auth = nil

	return c.Marshal()
}

func (t *Tx) ID() (string, error) {
	d, err := t.SigningBytes()
	if err != nil {
		return "", err
	}

	mh, err := multihash.Sum(d, multihash.SHA3_256, multihash.DefaultLengths[multihash.SHA3_256])
	if err != nil {
		return "", errors.Wrap(err, "hashing tx")
	}

	return mh.B58String(), nil
}

// Sign appends a proof of control for the address of k
func (t *Tx) Sign(k cryptography.PrivateKey) error {
	d, err := t.SigningBytes()
	if err != nil {
		return err
	}

	sig, err := k.Sign(d)
	if err != nil {
		return errors.Wrap(err, "signing tx")
	}

	pub, err := k.PublicBytes()
	if err != nil {
		return errors.Wrap(err, "getting public key")
	}

	addr, err := cryptography.Address(k.Type(), pub)
	if err != nil {
		return err
	}

	mb, err := cryptography.EncodeMultibase(pub)
	if err != nil {
		return errors.Wrap(err, "encoding public key")
	}

	t.Auth = append(t.Auth, Proof{
		Address:   addr,
		KeyType:   k.Type(),
		PublicKey: mb,
		Signature: sig,
	})

	return nil
}

// FindProof returns the first proof claiming addr
func (t *Tx) FindProof(addr string) (*Proof, bool) {
	for i := range t.Auth {
		if t.Auth[i].Address == addr {
			return &t.Auth[i], true
		}
	}

	return nil, false
}

// Verify checks the proof's key derives its address and that the signature
// covers msg
func (p *Proof) Verify(msg []byte) error {
	pub, err := cryptography.DecodeMultibase(p.PublicKey)
	if err != nil {
		return errors.Wrap(err, "decoding multibase")
	}

	addr, err := cryptography.Address(p.KeyType, pub)
	if err != nil {
		return err
	}
	if addr != p.Address {
		return ErrProofMismatched
	}

	ok, err := cryptography.Validate(p.KeyType, pub, p.Signature, msg)
	if err != nil {
		return errors.Wrap(err, "validating signature")
	}
	if !ok {
		return errors.New("invalid signature")
	}

	return nil
}
