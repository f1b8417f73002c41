package main

import "github.com/simeon-code254/matobev-apps/cmd"

// @title           Matobev Talent API
// @version         1.0.0
// @description     Video ingestion and player analysis API for the Matobev talent marketplace
// @contact.name    API Support
// @contact.url     https://github.com/simeon-code254/matobev-apps
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:8080
// @BasePath        /
// @schemes         http https
func main() {
	cmd.Execute()
}
