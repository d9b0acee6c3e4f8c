// Command cryptonum seals, opens, signs, and verifies files with the
// cryptonum hybrid envelope and RSA signatures. Keys are stored as raw
// PKCS#1 DER.
package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/halcyonsec/cryptonum"
	"github.com/halcyonsec/cryptonum/rsa"
)

var schemes = map[string]rsa.Scheme{
	"sha1":   rsa.SchemeSHA1,
	"sha256": rsa.SchemeSHA256,
	"sha384": rsa.SchemeSHA384,
	"sha512": rsa.SchemeSHA512,
}

var commands = []*cli.Command{
	{
		Name:  "keygen",
		Usage: "Generate an RSA key pair",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "bits",
				Aliases: []string{"b"},
				Usage:   "Modulus size in bits",
				Value:   2048,
			},
			&cli.StringFlag{
				Name:     "private",
				Usage:    "Output path for the PKCS#1 private key",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "public",
				Usage:    "Output path for the PKCS#1 public key",
				Required: true,
			},
		},
		Action: GenerateKeyPair,
	},
	{
		Name:  "encrypt",
		Usage: "Seal a file into a JSON envelope",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "public",
				Usage:    "Path to the recipient's PKCS#1 public key",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "aad",
				Usage:   "Associated data, authenticated but not encrypted",
				Aliases: []string{"a"},
			},
			&cli.StringFlag{
				Name:     "in",
				Aliases:  []string{"i"},
				Usage:    "Plaintext input path",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "out",
				Aliases:  []string{"o"},
				Usage:    "Envelope output path",
				Required: true,
			},
		},
		Action: EncryptFile,
	},
	{
		Name:  "decrypt",
		Usage: "Open a JSON envelope",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "private",
				Usage:    "Path to the recipient's PKCS#1 private key",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "in",
				Aliases:  []string{"i"},
				Usage:    "Envelope input path",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "out",
				Aliases:  []string{"o"},
				Usage:    "Plaintext output path",
				Required: true,
			},
		},
		Action: DecryptFile,
	},
	{
		Name:  "sign",
		Usage: "Sign a file with RSASSA-PKCS1-v1.5",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "private",
				Usage:    "Path to the signer's PKCS#1 private key",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "scheme",
				Usage:   "Digest scheme: sha1, sha256, sha384, sha512",
				Value:   "sha256",
				Aliases: []string{"s"},
			},
			&cli.StringFlag{
				Name:     "in",
				Aliases:  []string{"i"},
				Usage:    "Message input path",
				Required: true,
			},
		},
		Action: SignFile,
	},
	{
		Name:  "verify",
		Usage: "Verify an RSASSA-PKCS1-v1.5 signature",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "public",
				Usage:    "Path to the signer's PKCS#1 public key",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "scheme",
				Usage:   "Digest scheme: sha1, sha256, sha384, sha512",
				Value:   "sha256",
				Aliases: []string{"s"},
			},
			&cli.StringFlag{
				Name:     "in",
				Aliases:  []string{"i"},
				Usage:    "Message input path",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "sig",
				Usage:    "Signature as a hex string",
				Required: true,
			},
		},
		Action: VerifyFile,
	},
}

func newApp() *cli.App {
	return &cli.App{
		Name:     "cryptonum",
		Usage:    "Hybrid encryption and RSA signature tools",
		Commands: commands,
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func GenerateKeyPair(cCtx *cli.Context) error {
	bits := cCtx.Int("bits")

	fmt.Printf("Generating %d-bit key pair...\n", bits)
	priv, err := rsa.GenerateKey(bits)
	if err != nil {
		return fmt.Errorf("failed to generate key: %w", err)
	}

	privDER, err := rsa.MarshalPKCS1PrivateKey(priv)
	if err != nil {
		return fmt.Errorf("failed to encode private key: %w", err)
	}
	if err := os.WriteFile(cCtx.String("private"), privDER, 0o600); err != nil {
		return fmt.Errorf("failed to write private key: %w", err)
	}
	if err := os.WriteFile(cCtx.String("public"), rsa.MarshalPKCS1PublicKey(&priv.PublicKey), 0o644); err != nil {
		return fmt.Errorf("failed to write public key: %w", err)
	}

	fmt.Println("Done.")
	return nil
}

func EncryptFile(cCtx *cli.Context) error {
	pub, err := readPublicKey(cCtx.String("public"))
	if err != nil {
		return err
	}
	plaintext, err := os.ReadFile(cCtx.String("in"))
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	payload, err := cryptonum.Seal(pub, plaintext, []byte(cCtx.String("aad")))
	if err != nil {
		return fmt.Errorf("failed to seal: %w", err)
	}
	data, err := payload.Marshal()
	if err != nil {
		return fmt.Errorf("failed to encode envelope: %w", err)
	}
	if err := os.WriteFile(cCtx.String("out"), data, 0o644); err != nil {
		return fmt.Errorf("failed to write envelope: %w", err)
	}

	fmt.Printf("Sealed %d bytes.\n", len(plaintext))
	return nil
}

func DecryptFile(cCtx *cli.Context) error {
	priv, err := readPrivateKey(cCtx.String("private"))
	if err != nil {
		return err
	}
	data, err := os.ReadFile(cCtx.String("in"))
	if err != nil {
		return fmt.Errorf("failed to read envelope: %w", err)
	}

	payload, err := cryptonum.ParseSealedPayload(data)
	if err != nil {
		return fmt.Errorf("failed to parse envelope: %w", err)
	}
	plaintext, err := cryptonum.Open(priv, payload)
	if err != nil {
		return fmt.Errorf("failed to open: %w", err)
	}
	if err := os.WriteFile(cCtx.String("out"), plaintext, 0o600); err != nil {
		return fmt.Errorf("failed to write plaintext: %w", err)
	}

	fmt.Printf("Recovered %d bytes.\n", len(plaintext))
	return nil
}

func SignFile(cCtx *cli.Context) error {
	priv, err := readPrivateKey(cCtx.String("private"))
	if err != nil {
		return err
	}
	scheme, ok := schemes[cCtx.String("scheme")]
	if !ok {
		return fmt.Errorf("unknown scheme %q", cCtx.String("scheme"))
	}
	msg, err := os.ReadFile(cCtx.String("in"))
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	sig, err := rsa.Sign(priv, scheme, msg)
	if err != nil {
		return fmt.Errorf("failed to sign: %w", err)
	}

	fmt.Println(hex.EncodeToString(sig))
	return nil
}

func VerifyFile(cCtx *cli.Context) error {
	pub, err := readPublicKey(cCtx.String("public"))
	if err != nil {
		return err
	}
	scheme, ok := schemes[cCtx.String("scheme")]
	if !ok {
		return fmt.Errorf("unknown scheme %q", cCtx.String("scheme"))
	}
	msg, err := os.ReadFile(cCtx.String("in"))
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	sig, err := hex.DecodeString(cCtx.String("sig"))
	if err != nil {
		return fmt.Errorf("failed to decode signature: %w", err)
	}

	if !rsa.Verify(pub, scheme, msg, sig) {
		return fmt.Errorf("signature verification failed")
	}

	fmt.Println("Signature OK.")
	return nil
}

func readPrivateKey(path string) (*rsa.PrivateKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read private key: %w", err)
	}
	priv, err := rsa.ParsePKCS1PrivateKey(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}
	return priv, nil
}

func readPublicKey(path string) (*rsa.PublicKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read public key: %w", err)
	}
	pub, err := rsa.ParsePKCS1PublicKey(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse public key: %w", err)
	}
	return pub, nil
}
