package keystore

import (
	"encoding/base64"
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/tcfw/didreg/pkg/cryptography"
)

var (
	ErrNotFound  = errors.New("key not found")
	ErrNoDefault = errors.New("no default key")
)

type identityFile struct {
	Default string           `yaml:"default,omitempty"`
	Keys    []identityFileID `yaml:"keys"`
}

type identityFileID struct {
	Type string `yaml:"type"`
	Data string `yaml:"data"`
}

// FileStore keeps signing keys in a yaml file, indexed by ledger address
type FileStore struct {
	path string
	ids  identityFile
	idx  map[string]cryptography.PrivateKey

	mu sync.Mutex
}

func NewFileStore(path string) (*FileStore, error) {
	f := &FileStore{path: path}
	if err := f.read(); err != nil {
		return nil, err
	}

	return f, nil
}

func (fs *FileStore) read() error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	d, err := ioutil.ReadFile(fs.path)
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "reading identity file")
	}

	if err := yaml.Unmarshal(d, &fs.ids); err != nil {
		return errors.Wrap(err, "unmarshalling identity data")
	}

	return fs.buildIdx()
}

func (fs *FileStore) buildIdx() error {
	//assumes locked fs.mu

	fs.idx = make(map[string]cryptography.PrivateKey, len(fs.ids.Keys))

	for _, fid := range fs.ids.Keys {
		raw, err := base64.StdEncoding.DecodeString(fid.Data)
		if err != nil {
			return errors.Wrap(err, "decoding b64 identity data")
		}

		k, err := cryptography.ParsePrivateKey(cryptography.KeyType(fid.Type), raw)
		if err != nil {
			return errors.Wrap(err, "decoding key")
		}

		addr, err := cryptography.AddressOf(k)
		if err != nil {
			return errors.Wrap(err, "deriving address")
		}

		fs.idx[addr] = k
	}

	return nil
}

// Add stores k and returns its address. The first key added becomes the
// default.
func (fs *FileStore) Add(k cryptography.PrivateKey) (string, error) {
	addr, err := cryptography.AddressOf(k)
	if err != nil {
		return "", err
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	if _, ok := fs.idx[addr]; ok {
		return addr, nil
	}

	raw, err := k.Bytes()
	if err != nil {
		return "", errors.Wrap(err, "encoding key")
	}

	fs.ids.Keys = append(fs.ids.Keys, identityFileID{
		Type: string(k.Type()),
		Data: base64.StdEncoding.EncodeToString(raw),
	})
	fs.idx[addr] = k

	if fs.ids.Default == "" {
		fs.ids.Default = addr
	}

	return addr, fs.write()
}

func (fs *FileStore) SetDefault(addr string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if _, ok := fs.idx[addr]; !ok {
		return ErrNotFound
	}

	fs.ids.Default = addr

	return fs.write()
}

func (fs *FileStore) write() error {
	//assumes locked fs.mu

	if err := os.MkdirAll(filepath.Dir(fs.path), 0700); err != nil {
		return errors.Wrap(err, "creating identity dir")
	}

	d, err := yaml.Marshal(&fs.ids)
	if err != nil {
		return errors.Wrap(err, "marshalling identity data")
	}

	return ioutil.WriteFile(fs.path, d, 0600)
}

func (fs *FileStore) Find(addr string) (cryptography.PrivateKey, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	k, ok := fs.idx[addr]
	if !ok {
		return nil, ErrNotFound
	}

	return k, nil
}

// Default returns the default key, or the key named by addr if not empty
func (fs *FileStore) Default(addr string) (cryptography.PrivateKey, string, error) {
	if addr == "" {
		fs.mu.Lock()
		addr = fs.ids.Default
		fs.mu.Unlock()
	}
	if addr == "" {
		return nil, "", ErrNoDefault
	}

	k, err := fs.Find(addr)
	if err != nil {
		return nil, "", err
	}

	return k, addr, nil
}

func (fs *FileStore) List() []string {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	addrs := make([]string, 0, len(fs.idx))
	for a := range fs.idx {
		addrs = append(addrs, a)
	}

	sort.Strings(addrs)

	return addrs
}
