package configs

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type ENV struct {
	DBHost              string
	DBUser              string
	DBPassword          string
	DBName              string
	DBPort              string
	Port                string
	SESSION_KEY         string
	AppAuthKey          string
	AppEncKey           string
	SHOP_NAME           string
	STOREFRONT_API_URL  string
	STOREFRONT_TOKEN    string
	MIDDLEWARE_BASE_URL string
	RECAPTCHA_ID        string
	APP_URL             string
	APP_ENV             string
}

func LoadEnv() ENV {

	if err := godotenv.Load(".env"); err != nil {
		log.Println("Warning: No .env file found ")
	}

	return ENV{
		DBHost:              os.Getenv("DB_HOST"),
		DBUser:              os.Getenv("DB_USER"),
		DBPassword:          os.Getenv("DB_PASSWORD"),
		DBName:              os.Getenv("DB_NAME"),
		DBPort:              os.Getenv("DB_PORT"),
		Port:                os.Getenv("APP_PORT"),
		SESSION_KEY:         os.Getenv("SESSION_KEY"),
		AppAuthKey:          os.Getenv("APP_AUTH_KEY"),
		AppEncKey:           os.Getenv("APP_ENC_KEY"),
		SHOP_NAME:           os.Getenv("SHOP_NAME"),
		STOREFRONT_API_URL:  os.Getenv("STOREFRONT_API_URL"),
		STOREFRONT_TOKEN:    os.Getenv("STOREFRONT_ACCESS_TOKEN"),
		MIDDLEWARE_BASE_URL: os.Getenv("MIDDLEWARE_BASE_URL"),
		RECAPTCHA_ID:        os.Getenv("RECAPTCHA_ID"),
		APP_URL:             os.Getenv("APP_URL"),
		APP_ENV:             os.Getenv("APP_ENV"),
	}

}

var LoadENV = LoadEnv()
