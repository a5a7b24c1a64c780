package main

import "tbexpert/internal/app"

// @title           TB Expert API
// @version         1.0
// @description     Бэкенд портала по охране труда: новости, документы, НПА, чек-листы, инструктажи, вебинары, события, форум.
// @BasePath        /
func main() {
	app.Run()
}
