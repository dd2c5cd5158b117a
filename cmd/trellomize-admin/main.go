// Command trellomize-admin manages admin accounts and data resets outside
// the normal user flow.
//
// Usage:
//
//	trellomize-admin create-admin --username NAME --password SECRET
//	trellomize-admin purge-data
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"trellomize/internal/config"
)

type adminAccount struct {
	Username     string `json:"username"`
	PasswordHash string `json:"password_credential"`
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "create-admin":
		fs := flag.NewFlagSet("create-admin", flag.ExitOnError)
		username := fs.String("username", "", "Username for the admin")
		password := fs.String("password", "", "Password for the admin")
		fs.Parse(os.Args[2:])
		if *username == "" || *password == "" {
			log.Fatal("Username and password are required for creating an admin.")
		}
		if err := createAdmin(cfg.AdminPath(), *username, *password); err != nil {
			log.Fatal(err)
		}
	case "purge-data":
		if err := purgeData(cfg); err != nil {
			log.Fatal(err)
		}
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: trellomize-admin <create-admin|purge-data> [flags]")
}

func createAdmin(adminPath, username, password string) error {
	admins := []adminAccount{}
	if data, err := os.ReadFile(adminPath); err == nil {
		if err := json.Unmarshal(data, &admins); err != nil {
			return fmt.Errorf("read admin file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("read admin file: %w", err)
	}

	for _, a := range admins {
		if a.Username == username {
			return fmt.Errorf("an admin with this username already exists")
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	admins = append(admins, adminAccount{Username: username, PasswordHash: string(hashed)})
	data, err := json.MarshalIndent(admins, "", "    ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(adminPath, data, 0o600); err != nil {
		return fmt.Errorf("write admin file: %w", err)
	}

	fmt.Println("Admin account created successfully.")
	return nil
}

func purgeData(cfg *config.Config) error {
	fmt.Print("Are you sure you want to delete all data? (yes/no): ")
	reader := bufio.NewReader(os.Stdin)
	answer, _ := reader.ReadString('\n')
	if !strings.EqualFold(strings.TrimSpace(answer), "yes") {
		fmt.Println("Data deletion canceled.")
		return nil
	}

	removed := false
	for _, path := range []string{cfg.UsersPath(), cfg.ProjectsPath(), cfg.SQLitePath()} {
		if err := os.Remove(path); err == nil {
			removed = true
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("remove %s: %w", path, err)
		}
	}
	if !removed {
		fmt.Println("No data found to delete.")
		return nil
	}
	fmt.Println("All data has been deleted successfully.")
	return nil
}
