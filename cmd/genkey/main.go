// Command genkey writes the RSA key pair clients use to encrypt passwords.
package main

import (
	"flag"
	"log"
	"os"

	"recipe-share/helper"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	defaultDir := os.Getenv("RSA_DIR")
	if defaultDir == "" {
		defaultDir = "static/rsa"
	}
	dir := flag.String("dir", defaultDir, "directory to write private.pem and public.pem into")
	bits := flag.Int("bits", helper.RSAKeyBits, "key size in bits")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	if err := helper.GenerateKeyPair(*dir, *bits); err != nil {
		logger.Fatal("generate key pair", zap.Error(err))
	}
	logger.Info("key pair written", zap.String("dir", *dir), zap.Int("bits", *bits))
}
