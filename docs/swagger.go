// Package docs ODC Estimate API.
//
// Оценка стоимости перевозки негабаритных (ODC) грузов по каталогу
// обследованных маршрутов.
//
// Основные возможности:
// - Нормализация мест через Google Maps и подбор маршрута по ключевым словам
// - Подбор тарифа по диапазонам высоты, длины, ширины и веса
// - Расчёт расстояния по дорогам и стоимости поездки
// - Приём заявок, выгрузка в CSV/XLSX и администрирование маршрутов
//
//	Schemes: http, https
//	BasePath: /
//	Version: 1.0.0
//
//	Consumes:
//	- application/json
//	- multipart/form-data
//
//	Produces:
//	- application/json
//	- text/csv
//
//	SecurityDefinitions:
//	BearerAuth:
//	     type: apiKey
//	     name: Authorization
//	     in: header
//
// swagger:meta
package docs
