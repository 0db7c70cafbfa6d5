// @title           BloodBridge API
// @version         1.0
// @description     API донорского реестра: доноры, запросы крови, подбор и уведомления.
// @contact.name    BloodBridge
// @contact.email   support@bloodbridge.app
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:4000
// @BasePath        /

package main

import "bloodbridge_backend/internal/app"

func main() {
	app.Run()
}
