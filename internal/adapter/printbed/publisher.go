// Package printbed publishes processed image artifacts to the print-bed
// filesystem. Publishing is fire-once: errors propagate and abort that
// image's ingest.
package printbed

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
)

// Publisher pushes one local artifact under a remote key.
type Publisher interface {
	Publish(ctx context.Context, localPath, remoteKey string) error
}

// SFTPPublisher copies artifacts to a remote print-bed host over SFTP. A
// fresh connection is dialed per publish; the channel is used rarely and
// holding a session open across idle hours buys nothing.
type SFTPPublisher struct {
	addr      string
	user      string
	password  string
	remoteDir string
}

// NewSFTPPublisher configures the remote target.
func NewSFTPPublisher(addr, user, password, remoteDir string) *SFTPPublisher {
	return &SFTPPublisher{addr: addr, user: user, password: password, remoteDir: remoteDir}
}

func (p *SFTPPublisher) Publish(ctx context.Context, localPath, remoteKey string) error {
	src, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("open artifact: %w", err)
	}
	defer src.Close()

	conn, err := ssh.Dial("tcp", p.addr, &ssh.ClientConfig{
		User:            p.user,
		Auth:            []ssh.AuthMethod{ssh.Password(p.password)},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
	})
	if err != nil {
		return fmt.Errorf("dial print bed: %w", err)
	}
	defer conn.Close()

	client, err := sftp.NewClient(conn)
	if err != nil {
		return fmt.Errorf("open sftp session: %w", err)
	}
	defer client.Close()

	if err := ctx.Err(); err != nil {
		return err
	}

	remotePath := path.Join(p.remoteDir, remoteKey)
	if err := client.MkdirAll(path.Dir(remotePath)); err != nil {
		return fmt.Errorf("prepare remote dir: %w", err)
	}

	dst, err := client.Create(remotePath)
	if err != nil {
		return fmt.Errorf("create remote artifact: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("transfer artifact: %w", err)
	}
	return nil
}

// LocalPublisher spools artifacts into a local directory. Used when no
// print-bed address is configured (development and single-host setups).
type LocalPublisher struct {
	dir string
}

// NewLocalPublisher creates the spool directory if needed.
func NewLocalPublisher(dir string) (*LocalPublisher, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create spool dir: %w", err)
	}
	return &LocalPublisher{dir: dir}, nil
}

func (p *LocalPublisher) Publish(ctx context.Context, localPath, remoteKey string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	src, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("open artifact: %w", err)
	}
	defer src.Close()

	target := filepath.Join(p.dir, filepath.FromSlash(remoteKey))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("prepare spool dir: %w", err)
	}

	dst, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("create spooled artifact: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("spool artifact: %w", err)
	}
	return nil
}
