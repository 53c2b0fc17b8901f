package main

import (
	"github.com/sirupsen/logrus"

	"github.com/ffoods/quickbill/config"
	"github.com/ffoods/quickbill/database"
	"github.com/ffoods/quickbill/database/dbhelper"
)

// Seeds the admin account. Safe to run repeatedly: an existing account
// with the admin email is left untouched. Any failure exits non-zero.
func main() {
	config.Init()

	if err := database.ConnectAndMigrate(); err != nil {
		logrus.Fatalf("failed to initialize database, error: %v", err)
	}
	defer database.Shutdown()

	logrus.Info("seeding database...")

	name, email, password, phone := config.AdminSeed()
	created, err := dbhelper.EnsureAdmin(name, email, password, phone)
	if err != nil {
		logrus.Fatalf("error seeding database: %v", err)
	}
	if created {
		logrus.Info("admin user created successfully")
	} else {
		logrus.Info("admin user already exists, skipping creation")
	}
}
