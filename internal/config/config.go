package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Target describes the panel this invocation talks to. It is read from a
// panel.toml descriptor and passed explicitly into every component; nothing
// below the command layer reads ambient environment.
type Target struct {
	APIURL  string `toml:"apiUrl"`
	Host    string `toml:"host"`
	SSHUser string `toml:"sshUser"`
	SSHPort int    `toml:"sshPort"`
	SSHKey  string `toml:"sshKey"`
	Prefix  string `toml:"prefix"`
	Project string `toml:"project"`
}

// Secrets carries credentials. They come from the environment or the tool
// config, never from panel.toml, which is expected to be committed.
type Secrets struct {
	Token       string
	SSHPassword string
}

// LoadTarget reads and validates a target descriptor.
func LoadTarget(path string) (Target, error) {
	var t Target
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return Target{}, fmt.Errorf("read target descriptor %s: %w", path, err)
	}

	if t.SSHUser == "" {
		t.SSHUser = "root"
	}
	if t.SSHPort == 0 {
		t.SSHPort = 22
	}

	if err := t.Validate(); err != nil {
		return Target{}, fmt.Errorf("target descriptor %s: %w", path, err)
	}
	return t, nil
}

func (t Target) Validate() error {
	switch {
	case t.APIURL == "":
		return fmt.Errorf("apiUrl is required")
	case t.Host == "":
		return fmt.Errorf("host is required")
	case t.Prefix == "":
		return fmt.Errorf("prefix is required")
	case t.Project == "":
		return fmt.Errorf("project is required")
	}
	return nil
}
