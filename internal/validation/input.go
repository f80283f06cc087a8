package validation

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Константы валидации
const (
	MinUsernameLength    = 3
	MaxUsernameLength    = 30
	MinListingNameLength = 1
	MaxListingNameLength = 200
	MaxDescriptionLength = 5000
	MaxLocationLength    = 100
	MaxImageURLLength    = 500
	MinPasswordLength    = 8
)

// ValidateLength проверяет длину строки.
func ValidateLength(fieldName, value string, min, max int) error {
	length := utf8.RuneCountInString(value)
	if min > 0 && length < min {
		return fmt.Errorf("%s должен быть не менее %d символов", fieldName, min)
	}
	if max > 0 && length > max {
		return fmt.Errorf("%s должен быть не более %d символов", fieldName, max)
	}
	return nil
}

// ValidateNonEmpty проверяет, что строка не пустая.
func ValidateNonEmpty(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s не может быть пустым", fieldName)
	}
	return nil
}

// ValidateUsername проверяет имя пользователя.
func ValidateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("имя пользователя обязательно")
	}

	username = strings.TrimSpace(username)

	if err := ValidateLength("имя пользователя", username, MinUsernameLength, MaxUsernameLength); err != nil {
		return err
	}

	// Только буквы, цифры и подчеркивание
	usernameRegex := regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("имя пользователя может содержать только буквы, цифры и подчеркивание")
	}

	if len(username) > 0 && unicode.IsDigit(rune(username[0])) {
		return fmt.Errorf("имя пользователя не может начинаться с цифры")
	}

	return nil
}

// ValidateListingName проверяет название товара.
func ValidateListingName(name string) error {
	if err := ValidateNonEmpty("название товара", name); err != nil {
		return err
	}
	return ValidateLength("название товара", strings.TrimSpace(name), MinListingNameLength, MaxListingNameLength)
}

// ValidateListingDescription проверяет описание товара.
func ValidateListingDescription(description string) error {
	if err := ValidateNonEmpty("описание товара", description); err != nil {
		return err
	}
	return ValidateLength("описание товара", strings.TrimSpace(description), 0, MaxDescriptionLength)
}

// ValidateListingLocation проверяет местоположение товара.
func ValidateListingLocation(location string) error {
	if err := ValidateNonEmpty("местоположение", location); err != nil {
		return err
	}
	return ValidateLength("местоположение", strings.TrimSpace(location), 0, MaxLocationLength)
}

// ValidateImageURL проверяет ссылку на изображение товара.
func ValidateImageURL(link string) error {
	if err := ValidateNonEmpty("ссылка на изображение", link); err != nil {
		return err
	}

	link = strings.TrimSpace(link)
	if err := ValidateLength("ссылка на изображение", link, 0, MaxImageURLLength); err != nil {
		return err
	}

	parsedURL, err := url.Parse(link)
	if err != nil {
		return fmt.Errorf("некорректный формат URL")
	}

	// Схему не навязываем: исторические объявления хранят ссылки вида "xbox.com"
	if parsedURL.Scheme != "" && parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("ссылка должна начинаться с http:// или https://")
	}

	return nil
}

// ValidatePriceWei проверяет цену в wei.
func ValidatePriceWei(price int64) error {
	if price < 0 {
		return fmt.Errorf("цена не может быть отрицательной")
	}
	return nil
}

// ValidateAmountWei проверяет сумму платежа или депозита.
func ValidateAmountWei(amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("сумма должна быть положительной")
	}
	return nil
}
