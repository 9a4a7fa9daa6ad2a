package i18n

// ClientKey identifies a string rendered by the catalog page script.
type ClientKey string

const (
	NavHome     ClientKey = "navHome"
	NavCars     ClientKey = "navCars"
	NavBrands   ClientKey = "navBrands"
	NavAbout    ClientKey = "navAbout"
	NavContacts ClientKey = "navContacts"

	HeroTitle    ClientKey = "heroTitle"
	HeroSubtitle ClientKey = "heroSubtitle"
	HeroCTA      ClientKey = "heroCta"

	SearchPlaceholder ClientKey = "searchPlaceholder"

	FilterAll      ClientKey = "filterAll"
	FilterBusiness ClientKey = "filterBusiness"
	FilterSport    ClientKey = "filterSport"
	FilterSUV      ClientKey = "filterSuv"
	FilterPremium  ClientKey = "filterPremium"

	CardDetails ClientKey = "cardDetails"
	PriceFrom   ClientKey = "priceFrom"
	ModalBook   ClientKey = "modalBook"

	SpecEngine       ClientKey = "specEngine"
	SpecPower        ClientKey = "specPower"
	SpecAcceleration ClientKey = "specAcceleration"
	SpecDrive        ClientKey = "specDrive"
	SpecSeats        ClientKey = "specSeats"

	FormTitle           ClientKey = "formTitle"
	FormName            ClientKey = "formName"
	FormEmail           ClientKey = "formEmail"
	FormPhone           ClientKey = "formPhone"
	FormMessage         ClientKey = "formMessage"
	FormPrivacy         ClientKey = "formPrivacy"
	FormSubmit          ClientKey = "formButton"
	FormSending         ClientKey = "formSending"
	FormPrivacyReminder ClientKey = "formPrivacyReminder"
	FormEmailInvalid    ClientKey = "formEmailInvalid"
	FormCooldown        ClientKey = "formCooldown"
	FormError           ClientKey = "formError"
)

var clientMessages = map[ClientKey]map[Lang]string{
	NavHome:     {RU: "Главная", EN: "Home"},
	NavCars:     {RU: "Автомобили", EN: "Cars"},
	NavBrands:   {RU: "Марки", EN: "Brands"},
	NavAbout:    {RU: "О нас", EN: "About"},
	NavContacts: {RU: "Контакты", EN: "Contacts"},

	HeroTitle:    {RU: "Аренда премиальных автомобилей", EN: "Premium car rental"},
	HeroSubtitle: {RU: "Бизнес, спорт и внедорожники с доставкой по городу", EN: "Business, sport and SUV cars delivered across the city"},
	HeroCTA:      {RU: "Выбрать автомобиль", EN: "Choose a car"},

	SearchPlaceholder: {RU: "Поиск автомобиля...", EN: "Search for a car..."},

	FilterAll:      {RU: "Все", EN: "All"},
	FilterBusiness: {RU: "Бизнес", EN: "Business"},
	FilterSport:    {RU: "Спорт", EN: "Sport"},
	FilterSUV:      {RU: "Внедорожники", EN: "SUV"},
	FilterPremium:  {RU: "Премиум", EN: "Premium"},

	CardDetails: {RU: "Подробнее", EN: "Details"},
	PriceFrom:   {RU: "от {price} ₽ / сутки", EN: "from ${price} / day"},
	ModalBook:   {RU: "Забронировать", EN: "Book now"},

	SpecEngine:       {RU: "Двигатель:", EN: "Engine:"},
	SpecPower:        {RU: "Мощность:", EN: "Power:"},
	SpecAcceleration: {RU: "Разгон 0-100:", EN: "0-100 km/h:"},
	SpecDrive:        {RU: "Привод:", EN: "Drive:"},
	SpecSeats:        {RU: "Мест:", EN: "Seats:"},

	FormTitle:           {RU: "Оставить заявку", EN: "Send a request"},
	FormName:            {RU: "Ваше имя", EN: "Your name"},
	FormEmail:           {RU: "Email", EN: "Email"},
	FormPhone:           {RU: "Телефон", EN: "Phone"},
	FormMessage:         {RU: "Сообщение", EN: "Message"},
	FormPrivacy:         {RU: "Я согласен на обработку персональных данных", EN: "I agree to the processing of my personal data"},
	FormSubmit:          {RU: "Отправить", EN: "Send"},
	FormSending:         {RU: "Отправка...", EN: "Sending..."},
	FormPrivacyReminder: {RU: "Пожалуйста, дайте согласие на обработку персональных данных.", EN: "Please consent to the processing of your personal data."},
	FormEmailInvalid:    {RU: "Пожалуйста, укажите корректный email.", EN: "Please provide a valid email address."},
	FormCooldown:        {RU: "Подождите {seconds} с перед повторной отправкой.", EN: "Please wait {seconds}s before sending again."},
	FormError:           {RU: "Произошла ошибка при отправке формы. Попробуйте позже.", EN: "An error occurred while sending the form. Please try again later."},
}

// T returns the client string for key in lang with Russian fallback.
func T(key ClientKey, lang Lang) string {
	return lookup(clientMessages[key], lang)
}

// ClientTable returns the client strings keyed by id and language code, the
// shape the page script reads from window.APEX_TRANSLATIONS.
func ClientTable() map[string]map[string]string {
	out := make(map[string]map[string]string, len(clientMessages))
	for key, byLang := range clientMessages {
		row := make(map[string]string, len(byLang))
		for lang, text := range byLang {
			row[string(lang)] = text
		}
		out[string(key)] = row
	}
	return out
}
