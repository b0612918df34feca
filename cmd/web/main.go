package main

import "treinai_backend/internal/app"

func main() {
	app.Run()
}
