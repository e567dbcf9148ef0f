// Package standalone assembles a self-contained bundle: the server binary,
// its static assets, a config pinned to a fixed port and a short French
// usage note.
package standalone

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-rentalcontract/pkg/renderers/html"
)

// Bundle file names.
const (
	ConfigFile   = "config.yaml"
	ManifestFile = "standalone.json"
	ReadmeFile   = "README.txt"
)

const (
	DefaultName    = "rentalcontract-standalone"
	DefaultVersion = "1.0.0"
	DefaultPort    = 3000
)

var ErrServerBinaryRequired = errors.New("standalone: server binary is required")

// Options control Package.
type Options struct {
	// AssetsDir is copied recursively into the bundle. The embedded
	// stylesheet assets are exported when empty.
	AssetsDir    string
	OutputDir    string
	ServerBinary string
	Name         string
	Version      string
	Port         int
}

// Manifest describes the bundle in standalone.json.
type Manifest struct {
	Name        string            `json:"name"`
	Version     string            `json:"version"`
	Description string            `json:"description"`
	Main        string            `json:"main"`
	Scripts     map[string]string `json:"scripts"`
}

type bundleConfig struct {
	Server struct {
		Port      int    `yaml:"port"`
		StaticDir string `yaml:"static_dir"`
	} `yaml:"server"`
}

// Package writes the bundle into opts.OutputDir, creating it when missing,
// and returns its manifest. Existing files are overwritten.
func Package(ctx context.Context, opts Options) (Manifest, error) {
	opts = withDefaults(opts)
	if strings.TrimSpace(opts.OutputDir) == "" {
		return Manifest{}, errors.New("standalone: output directory is required")
	}
	if strings.TrimSpace(opts.ServerBinary) == "" {
		return Manifest{}, ErrServerBinaryRequired
	}
	if opts.Port < 1 || opts.Port > 65535 {
		return Manifest{}, fmt.Errorf("standalone: invalid port %d", opts.Port)
	}

	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return Manifest{}, fmt.Errorf("standalone: create output: %w", err)
	}

	assets := html.AssetsFS()
	if opts.AssetsDir != "" {
		info, err := os.Stat(opts.AssetsDir)
		if err != nil {
			return Manifest{}, fmt.Errorf("standalone: assets: %w", err)
		}
		if !info.IsDir() {
			return Manifest{}, fmt.Errorf("standalone: assets: %s is not a directory", opts.AssetsDir)
		}
		assets = os.DirFS(opts.AssetsDir)
	}
	if err := copyTree(ctx, assets, opts.OutputDir); err != nil {
		return Manifest{}, fmt.Errorf("standalone: copy assets: %w", err)
	}

	binary := filepath.Base(opts.ServerBinary)
	if err := copyFile(opts.ServerBinary, filepath.Join(opts.OutputDir, binary), 0o755); err != nil {
		return Manifest{}, fmt.Errorf("standalone: copy server: %w", err)
	}

	if err := writeConfig(opts); err != nil {
		return Manifest{}, err
	}

	manifest := Manifest{
		Name:        opts.Name,
		Version:     opts.Version,
		Description: "Version standalone du contrat de location de véhicule",
		Main:        binary,
		Scripts: map[string]string{
			"start": startCommand(binary),
		},
	}
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return Manifest{}, fmt.Errorf("standalone: encode manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(opts.OutputDir, ManifestFile), append(data, '\n'), 0o644); err != nil {
		return Manifest{}, fmt.Errorf("standalone: write manifest: %w", err)
	}

	if err := os.WriteFile(filepath.Join(opts.OutputDir, ReadmeFile), []byte(readme(binary, opts.Port)), 0o644); err != nil {
		return Manifest{}, fmt.Errorf("standalone: write readme: %w", err)
	}
	return manifest, nil
}

func withDefaults(opts Options) Options {
	if strings.TrimSpace(opts.Name) == "" {
		opts.Name = DefaultName
	}
	if strings.TrimSpace(opts.Version) == "" {
		opts.Version = DefaultVersion
	}
	if opts.Port == 0 {
		opts.Port = DefaultPort
	}
	return opts
}

func startCommand(binary string) string {
	return "./" + binary + " -config " + ConfigFile
}

func writeConfig(opts Options) error {
	var cfg bundleConfig
	cfg.Server.Port = opts.Port
	cfg.Server.StaticDir = "."
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("standalone: encode config: %w", err)
	}
	if err := os.WriteFile(filepath.Join(opts.OutputDir, ConfigFile), data, 0o644); err != nil {
		return fmt.Errorf("standalone: write config: %w", err)
	}
	return nil
}

func copyTree(ctx context.Context, src fs.FS, dst string) error {
	return fs.WalkDir(src, ".", func(name string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		target := filepath.Join(dst, filepath.FromSlash(name))
		if entry.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		in, err := src.Open(name)
		if err != nil {
			return err
		}
		defer in.Close()
		return writeFrom(in, target, 0o644)
	})
}

func copyFile(src, dst string, mode os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	return writeFrom(in, dst, mode)
}

func writeFrom(in io.Reader, dst string, mode os.FileMode) error {
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func readme(binary string, port int) string {
	url := fmt.Sprintf("http://localhost:%d", port)
	return fmt.Sprintf(`# Contrat de Location de Véhicule - Version Standalone

## Installation

1. Copiez ce dossier sur l'ordinateur de l'agence
2. Aucun logiciel supplémentaire n'est nécessaire

## Démarrage

Pour démarrer l'application, ouvrez un terminal dans ce dossier et exécutez la commande :
%s

L'application sera accessible à l'adresse : %s

## Utilisation

1. Ouvrez votre navigateur web
2. Accédez à %s
3. Remplissez le formulaire puis téléchargez le contrat
`, startCommand(binary), url, url)
}
