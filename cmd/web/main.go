package main

import "storehub_backend/internal/app"

func main() {
	app.Run()
}
