package models

// ContentCategory — пункт закрытого перечисления категорий контента.
// Порядок объявления перечисления задаёт порядок групп на странице.
type ContentCategory struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

var DocumentCategories = []ContentCategory{
	{Key: "safety_management", Label: "Safety management"},
	{Key: "incidents", Label: "Инциденты и расследования"},
	{Key: "other", Label: "Другие документы"},
}

var ChecklistCategories = []ContentCategory{
	{Key: "checklist_1", Label: "Обходы по Безопасности"},
	{Key: "checklist_2", Label: "Проверочные листы оборудования"},
	{Key: "checklist_3", Label: "Шаблоны расследований"},
	{Key: "checklist_4", Label: "Отчетность"},
}

var LawCategories = []ContentCategory{
	{Key: "main_laws", Label: "Основные законы и кодексы"},
	{Key: "RLA", Label: "Нормативно-правовые акты (НПА)"},
	{Key: "rules_and_requirements", Label: "Правила и требования по охране труда"},
	{Key: "tech_standarts", Label: "Технические регламенты и стандарты"},
	{Key: "changes_and_updates", Label: "Изменения и обновления"},
	{Key: "letters", Label: "Письма и разъяснения госорганов"},
}

var InstructionCategories = []ContentCategory{
	{Key: "introductory", Label: "Вводный"},
	{Key: "primary_workplace", Label: "Первичный"},
	{Key: "instructions", Label: "Инструкции по БиОТ"},
}

var FAQCategories = []ContentCategory{
	{Key: "organisation", Label: "Организация охраны труда"},
	{Key: "PPE", Label: "СИЗ и рабочая форма"},
	{Key: "documents", Label: "Документы и оформление"},
	{Key: "inspections", Label: "Проверки и ответственность"},
	{Key: "accidents", Label: "Несчастные случаи и расследования"},
}

var WebinarStatuses = []ContentCategory{
	{Key: "upcoming", Label: "Предстоящие"},
	{Key: "completed", Label: "Прошедшие"},
}
