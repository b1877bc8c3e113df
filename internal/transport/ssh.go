package transport

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"path"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
)

// SSHUploader copies files to the panel host over SFTP. A fresh connection
// is made per Put; one invocation uploads at most one archive.
type SSHUploader struct {
	Host string
	Port int
	User string
	Auth []ssh.AuthMethod
}

// NewSSHUploader builds an uploader from the target descriptor. keyPath may
// be empty, in which case password auth alone is used.
func NewSSHUploader(host string, port int, user, keyPath, password string) (*SSHUploader, error) {
	var auth []ssh.AuthMethod

	if keyPath != "" {
		keyBytes, err := os.ReadFile(keyPath)
		if err != nil {
			return nil, fmt.Errorf("read ssh key %s: %w", keyPath, err)
		}
		signer, err := ssh.ParsePrivateKey(keyBytes)
		if err != nil {
			return nil, fmt.Errorf("parse ssh key %s: %w", keyPath, err)
		}
		auth = append(auth, ssh.PublicKeys(signer))
	}
	if password != "" {
		auth = append(auth, ssh.Password(password))
	}
	if len(auth) == 0 {
		return nil, fmt.Errorf("no ssh credentials for %s@%s", user, host)
	}

	return &SSHUploader{Host: host, Port: port, User: user, Auth: auth}, nil
}

func (u *SSHUploader) Put(ctx context.Context, localPath, remotePath string) error {
	addr := net.JoinHostPort(u.Host, fmt.Sprintf("%d", u.Port))
	config := &ssh.ClientConfig{
		User:            u.User,
		Auth:            u.Auth,
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
	}

	conn, err := ssh.Dial("tcp", addr, config)
	if err != nil {
		return fmt.Errorf("ssh dial %s: %w", addr, err)
	}
	defer conn.Close()

	client, err := sftp.NewClient(conn)
	if err != nil {
		return fmt.Errorf("open sftp session: %w", err)
	}
	defer client.Close()

	if err := client.MkdirAll(path.Dir(remotePath)); err != nil {
		return fmt.Errorf("create staging dir %s: %w", path.Dir(remotePath), err)
	}

	src, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("open %s: %w", localPath, err)
	}
	defer src.Close()

	dst, err := client.Create(remotePath)
	if err != nil {
		return fmt.Errorf("create %s: %w", remotePath, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("copy to %s: %w", remotePath, err)
	}
	return nil
}
